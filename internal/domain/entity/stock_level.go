package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es la caché materializada del balance de un item, refrescada por
// la reconciliación periódica. Es consultiva: ninguna validación del motor lee
// de aquí, siempre del log de transacciones.
type StockLevel struct {
	ItemID    string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
