package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de material fungible del almacén de obra.
const (
	CategoryIron     = "iron"     // hierro por diámetro (Φ8, Φ12, ...)
	CategoryCement   = "cement"   // cemento por ubicación/tipo
	CategoryGasoline = "gasoline" // combustible en litros
)

// ValidCategory indica si la categoría es una de las soportadas.
func ValidCategory(c string) bool {
	return c == CategoryIron || c == CategoryCement || c == CategoryGasoline
}

// StockItem representa un material fungible del almacén (ej. "Φ12", "Cemento bodega").
// CurrentStock es derivado: suma firmada de sus transacciones, nunca se persiste
// como columna editable.
type StockItem struct {
	ID           string
	Category     string // iron, cement, gasoline
	Label        string // etiqueta visible: diámetro, tipo de cemento, combustible
	DisplayOrder int    // solo ordenamiento estable en UI, sin efecto en stock
	CurrentStock decimal.Decimal
	CreatedAt    time.Time
}
