package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockItemRepository define el puerto de persistencia para items del almacén (DIP).
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	// GetByID devuelve nil, nil si el item no existe.
	GetByID(id string) (*entity.StockItem, error)
	// GetByIDForUpdate bloquea la fila del item dentro de la transacción actual
	// (SELECT FOR UPDATE); serializa el check-then-write por item.
	GetByIDForUpdate(id string) (*entity.StockItem, error)
	// List devuelve los items con su stock derivado, ordenados por display_order.
	// category vacío lista todas las categorías.
	List(category string) ([]*entity.StockItem, error)
	// MaxDisplayOrder devuelve el mayor display_order existente, -1 si no hay items.
	MaxDisplayOrder() (int, error)
	UpdateDisplayOrder(id string, order int) error
	Delete(id string) error
}
