// Package ledger contiene la aritmética pura del libro de almacén: el balance
// de un item es la reducción firmada de sus transacciones, conmutativa e
// independiente del orden de inserción.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Signed devuelve la cantidad con signo de una transacción: +q para IN, -q para OUT.
func Signed(t *entity.Transaction) decimal.Decimal {
	if t.Type == entity.TransactionTypeOUT {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// Balance reduce una lista de transacciones a su suma firmada. Cero si está vacía.
func Balance(transactions []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(Signed(t))
	}
	return total
}

// CanCancel decide si una transacción puede eliminarse del libro sin dejar el
// total recomputado en negativo. currentTotal es el balance vigente incluyendo
// la transacción. Cancelar una salida siempre es válido (solo sube el stock);
// cancelar una entrada exige que el resto del libro la cubra.
func CanCancel(t *entity.Transaction, currentTotal decimal.Decimal) bool {
	if t.Type == entity.TransactionTypeOUT {
		return true
	}
	return currentTotal.GreaterThanOrEqual(t.Quantity)
}
