package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de almacén.
const (
	TransactionTypeIN  = "IN"  // entrada: suma stock
	TransactionTypeOUT = "OUT" // salida: resta stock
)

// Descripciones sintéticas que genera el propio motor.
const (
	DescriptionInitialInventory = "Initial Inventory" // asiento de alta con cantidad inicial
	DescriptionManualAdjustment = "Manual Adjustment" // asiento de ajuste absoluto
)

// ValidTransactionType indica si el tipo es IN u OUT.
func ValidTransactionType(t string) bool {
	return t == TransactionTypeIN || t == TransactionTypeOUT
}

// Transaction es un asiento del libro de un StockItem. TransactionDate es la
// fecha de negocio (la aporta el usuario, ej. fecha del camión); CreatedAt es
// el instante de registro y solo desempata el ordenamiento.
type Transaction struct {
	ID              string
	ItemID          string
	Type            string // IN, OUT
	Quantity        decimal.Decimal
	Description     string // placa del camión, subcontratista, etc. (opcional)
	TransactionDate time.Time
	CreatedAt       time.Time
}
