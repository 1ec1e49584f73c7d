package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para el libro de transacciones.
type TransactionRepository interface {
	Create(t *entity.Transaction) error
	// GetByID devuelve nil, nil si la transacción no existe.
	GetByID(id string) (*entity.Transaction, error)
	Delete(id string) error
	// SumByItem devuelve la suma firmada (IN - OUT) del libro de un item; cero si está vacío.
	SumByItem(itemID string) (decimal.Decimal, error)
	// ListByItem lista el libro de un item, transaction_date DESC y created_at DESC.
	// from/to acotan la fecha de negocio: [from, to) — nil sin filtro.
	ListByItem(itemID string, from, to *time.Time) ([]*entity.Transaction, error)
	// ListAll lista el libro completo con el mismo orden; category vacío no filtra.
	ListAll(category string) ([]*entity.Transaction, error)
}
