package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del check-then-write
// del motor del libro: junto al bloqueo de fila del item, dos salidas
// concurrentes sobre el mismo item nunca validan contra un balance obsoleto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
