package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
)

func in(q int64) *entity.Transaction {
	return &entity.Transaction{Type: entity.TransactionTypeIN, Quantity: decimal.NewFromInt(q)}
}

func out(q int64) *entity.Transaction {
	return &entity.Transaction{Type: entity.TransactionTypeOUT, Quantity: decimal.NewFromInt(q)}
}

func TestSigned(t *testing.T) {
	assert.True(t, ledger.Signed(in(10)).Equal(decimal.NewFromInt(10)),
		"una entrada aporta su cantidad en positivo")
	assert.True(t, ledger.Signed(out(10)).Equal(decimal.NewFromInt(-10)),
		"una salida aporta su cantidad en negativo")
}

func TestBalance_VacioEsCero(t *testing.T) {
	assert.True(t, ledger.Balance(nil).IsZero(), "un libro vacío tiene balance cero")
}

// El balance es una suma firmada: cualquier permutación del libro produce el
// mismo total.
func TestBalance_Conmutativo(t *testing.T) {
	permutations := [][]*entity.Transaction{
		{in(100), out(30), in(5), out(25)},
		{out(25), in(100), out(30), in(5)},
		{in(5), out(25), out(30), in(100)},
	}
	expected := decimal.NewFromInt(50)
	for _, perm := range permutations {
		require.True(t, ledger.Balance(perm).Equal(expected),
			"el balance no puede depender del orden de los asientos")
	}
}

func TestBalance_ConDecimales(t *testing.T) {
	book := []*entity.Transaction{
		{Type: entity.TransactionTypeIN, Quantity: decimal.RequireFromString("10.5")},
		{Type: entity.TransactionTypeOUT, Quantity: decimal.RequireFromString("3.25")},
	}
	assert.True(t, ledger.Balance(book).Equal(decimal.RequireFromString("7.25")),
		"los litros de combustible son fraccionarios")
}

func TestCanCancel(t *testing.T) {
	// Cancelar una salida siempre procede: solo puede subir el stock.
	assert.True(t, ledger.CanCancel(out(999), decimal.Zero))

	// Cancelar una entrada exige que el resto del libro la cubra.
	assert.True(t, ledger.CanCancel(in(100), decimal.NewFromInt(100)),
		"total 100 cubre exactamente la entrada de 100")
	assert.False(t, ledger.CanCancel(in(100), decimal.NewFromInt(20)),
		"con total 20, quitar la entrada de 100 dejaría -80")
}
