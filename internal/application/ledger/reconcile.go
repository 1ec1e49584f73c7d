package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReconcileUseCase refresca la caché materializada de balances (stock_levels)
// recomputando la suma firmada del libro de cada item. La caché es solo para
// consulta rápida de tableros; las validaciones del motor nunca leen de ella.
type ReconcileUseCase struct {
	itemRepo  repository.StockItemRepository
	txRepo    repository.TransactionRepository
	levelRepo repository.StockLevelRepository
	log       zerolog.Logger
}

// NewReconcileUseCase construye el caso de uso de reconciliación.
func NewReconcileUseCase(
	itemRepo repository.StockItemRepository,
	txRepo repository.TransactionRepository,
	levelRepo repository.StockLevelRepository,
	log zerolog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{itemRepo: itemRepo, txRepo: txRepo, levelRepo: levelRepo, log: log}
}

// ReconcileResult resumen de una pasada de reconciliación.
type ReconcileResult struct {
	Items  int // items recomputados
	Drifts int // niveles cacheados que no coincidían con el balance derivado
}

// ReconcileAll recomputa el balance de todos los items, registra en el log
// cualquier desvío contra la caché y la deja al día.
func (uc *ReconcileUseCase) ReconcileAll(ctx context.Context) (ReconcileResult, error) {
	items, err := uc.itemRepo.List("")
	if err != nil {
		return ReconcileResult{}, err
	}

	var result ReconcileResult
	for _, item := range items {
		derived, err := uc.txRepo.SumByItem(item.ID)
		if err != nil {
			return result, err
		}
		cached, err := uc.levelRepo.Get(item.ID)
		if err != nil {
			return result, err
		}
		if cached != nil && !cached.Quantity.Equal(derived) {
			result.Drifts++
			uc.log.Warn().
				Str("item_id", item.ID).
				Str("label", item.Label).
				Str("cached", cached.Quantity.String()).
				Str("derived", derived.String()).
				Msg("desvío entre caché de niveles y balance derivado")
		}
		err = uc.levelRepo.Upsert(&entity.StockLevel{
			ItemID:    item.ID,
			Quantity:  derived,
			UpdatedAt: time.Now(),
		})
		if err != nil {
			return result, err
		}
		result.Items++
	}
	return result, nil
}

// ListLevels devuelve la caché de niveles tal como está.
func (uc *ReconcileUseCase) ListLevels(ctx context.Context) ([]*entity.StockLevel, error) {
	return uc.levelRepo.List()
}
