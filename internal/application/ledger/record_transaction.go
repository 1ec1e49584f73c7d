package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	ledgermath "github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RecordTransactionInput entrada para registrar un asiento.
// Date en formato YYYY-MM-DD; vacía = hoy (fecha de negocio, no de registro).
type RecordTransactionInput struct {
	ItemID      string
	Type        string
	Quantity    decimal.Decimal
	Description string
	Date        string
}

// RecordTransaction valida y registra un asiento IN/OUT. Para OUT, la
// verificación de stock suficiente y el insert ocurren dentro de la misma tx
// con la fila del item bloqueada: de dos salidas concurrentes sobre el mismo
// item, la perdedora valida contra el balance ya comprometido y recibe
// ErrInsufficientStock. Devuelve el id del asiento creado.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, input RecordTransactionInput) (string, error) {
	if input.ItemID == "" || !entity.ValidTransactionType(input.Type) {
		return "", domain.ErrInvalidInput
	}
	if !input.Quantity.IsPositive() {
		return "", domain.ErrInvalidQuantity
	}

	now := time.Now()
	txDate := dateOnly(now)
	if input.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.Date, time.UTC)
		if err != nil {
			return "", domain.ErrInvalidInput
		}
		txDate = parsed
	}

	trans := &entity.Transaction{
		ID:              uuid.New().String(),
		ItemID:          input.ItemID,
		Type:            input.Type,
		Quantity:        input.Quantity,
		Description:     input.Description,
		TransactionDate: txDate,
		CreatedAt:       now,
	}

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		txRepo repository.TransactionRepository,
	) error {
		item, err := itemRepo.GetByIDForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if input.Type == entity.TransactionTypeOUT {
			current, err := txRepo.SumByItem(input.ItemID)
			if err != nil {
				return err
			}
			if current.LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
		}
		return txRepo.Create(trans)
	})
	if err != nil {
		return "", err
	}
	return trans.ID, nil
}

// CancelTransaction elimina un asiento del libro (hard delete, paridad con el
// sistema de origen). Cancelar una salida siempre procede, solo sube el stock;
// cancelar una entrada se rechaza con ErrWouldGoNegative si el resto del libro
// ya consumió ese stock y el total recomputado quedaría negativo.
func (uc *LedgerUseCase) CancelTransaction(ctx context.Context, transactionID string) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		txRepo repository.TransactionRepository,
	) error {
		trans, err := txRepo.GetByID(transactionID)
		if err != nil {
			return err
		}
		if trans == nil {
			return domain.ErrNotFound
		}
		item, err := itemRepo.GetByIDForUpdate(trans.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if trans.Type == entity.TransactionTypeIN {
			current, err := txRepo.SumByItem(trans.ItemID)
			if err != nil {
				return err
			}
			if !ledgermath.CanCancel(trans, current) {
				return domain.ErrWouldGoNegative
			}
		}
		return txRepo.Delete(transactionID)
	})
}

// ListTransactions lista el libro de un item, más reciente primero
// (transaction_date DESC, created_at DESC). month en formato YYYY-MM acota a
// ese mes de la fecha de negocio; vacío lista todo.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, itemID, month string) ([]*entity.Transaction, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	var from, to *time.Time
	if month != "" {
		start, err := time.ParseInLocation("2006-01", month, time.UTC)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		end := start.AddDate(0, 1, 0)
		from, to = &start, &end
	}
	return uc.txRepo.ListByItem(itemID, from, to)
}

// ListAllTransactions lista el libro completo del almacén, opcionalmente
// filtrado por categoría, con el mismo orden más-reciente-primero.
func (uc *LedgerUseCase) ListAllTransactions(ctx context.Context, category string) ([]*entity.Transaction, error) {
	if category != "" && !entity.ValidCategory(category) {
		return nil, domain.ErrInvalidInput
	}
	return uc.txRepo.ListAll(category)
}
