package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LedgerUseCase es el motor del libro de almacén: responde cuál es el stock
// actual de un item y lo muta únicamente mediante transacciones auditables,
// todas dentro de una tx de BD con bloqueo de fila por item.
type LedgerUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	txRepo   repository.TransactionRepository
}

// NewLedgerUseCase construye el caso de uso. itemRepo y txRepo van atados al
// pool y sirven solo lecturas; las mutaciones pasan por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	txRepo repository.TransactionRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, itemRepo: itemRepo, txRepo: txRepo}
}

// CreateItem da de alta un item del almacén. DisplayOrder queda al final del
// listado (max + 1, 0 si no hay items). Si initialQuantity > 0 se registra en
// el mismo alta un asiento IN "Initial Inventory" fechado hoy, para que stock
// e historial nazcan consistentes.
func (uc *LedgerUseCase) CreateItem(ctx context.Context, category, label string, initialQuantity decimal.Decimal) (*entity.StockItem, error) {
	if !entity.ValidCategory(category) || label == "" {
		return nil, domain.ErrInvalidInput
	}
	if initialQuantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	item := &entity.StockItem{
		ID:           uuid.New().String(),
		Category:     category,
		Label:        label,
		CurrentStock: initialQuantity,
		CreatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		txRepo repository.TransactionRepository,
	) error {
		maxOrder, err := itemRepo.MaxDisplayOrder()
		if err != nil {
			return err
		}
		item.DisplayOrder = maxOrder + 1
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if !initialQuantity.IsPositive() {
			return nil
		}
		seed := &entity.Transaction{
			ID:              uuid.New().String(),
			ItemID:          item.ID,
			Type:            entity.TransactionTypeIN,
			Quantity:        initialQuantity,
			Description:     entity.DescriptionInitialInventory,
			TransactionDate: dateOnly(now),
			CreatedAt:       now,
		}
		return txRepo.Create(seed)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetStock devuelve el balance derivado de un item: SUM(IN) - SUM(OUT) sobre
// su libro, cero si no tiene transacciones.
func (uc *LedgerUseCase) GetStock(ctx context.Context, itemID string) (decimal.Decimal, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return uc.txRepo.SumByItem(itemID)
}

// ListItems lista los items con su stock derivado, por display_order.
// category vacío devuelve todas las categorías.
func (uc *LedgerUseCase) ListItems(ctx context.Context, category string) ([]*entity.StockItem, error) {
	if category != "" && !entity.ValidCategory(category) {
		return nil, domain.ErrInvalidInput
	}
	return uc.itemRepo.List(category)
}

// DeleteItem elimina un item; sus transacciones caen en cascada (FK).
func (uc *LedgerUseCase) DeleteItem(ctx context.Context, itemID string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(itemID)
}

// SetQuantity fija el balance de un item en un valor absoluto (edición rápida
// de la ficha). No escribe ninguna columna cruda: bajo el bloqueo del item
// calcula el balance derivado y registra un único asiento de ajuste
// ("Manual Adjustment") por la diferencia, así el historial siempre explica
// el stock. quantity < 0 se rechaza; si coincide con el balance no hace nada.
func (uc *LedgerUseCase) SetQuantity(ctx context.Context, itemID string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return domain.ErrInvalidQuantity
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		txRepo repository.TransactionRepository,
	) error {
		item, err := itemRepo.GetByIDForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		current, err := txRepo.SumByItem(itemID)
		if err != nil {
			return err
		}
		diff := quantity.Sub(current)
		if diff.IsZero() {
			return nil
		}
		adjType := entity.TransactionTypeIN
		if diff.IsNegative() {
			adjType = entity.TransactionTypeOUT
			diff = diff.Neg()
		}
		now := time.Now()
		adj := &entity.Transaction{
			ID:              uuid.New().String(),
			ItemID:          itemID,
			Type:            adjType,
			Quantity:        diff,
			Description:     entity.DescriptionManualAdjustment,
			TransactionDate: dateOnly(now),
			CreatedAt:       now,
		}
		return txRepo.Create(adj)
	})
}

// ReorderItems asigna display_order 0..N-1 a los ids en el orden recibido
// (drag & drop del tablero). Sin efecto sobre el stock; items no mencionados
// conservan su clave previa. Cualquier id desconocido aborta sin efecto parcial.
func (uc *LedgerUseCase) ReorderItems(ctx context.Context, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		txRepo repository.TransactionRepository,
	) error {
		for _, id := range itemIDs {
			item, err := itemRepo.GetByIDForUpdate(id)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
		}
		for i, id := range itemIDs {
			if err := itemRepo.UpdateDisplayOrder(id, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// dateOnly trunca un instante a su fecha de calendario en UTC (columna DATE).
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
