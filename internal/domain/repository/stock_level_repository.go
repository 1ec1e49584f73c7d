package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockLevelRepository define el puerto de la caché materializada de balances.
type StockLevelRepository interface {
	// Get devuelve nil, nil si no hay nivel cacheado para el item.
	Get(itemID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	List() ([]*entity.StockLevel, error)
}
