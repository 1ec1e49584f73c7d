package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/ledger/ledgertest"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newUseCase(t *testing.T) (*ledger.LedgerUseCase, *ledgertest.Store) {
	t.Helper()
	store := ledgertest.NewStore()
	uc := ledger.NewLedgerUseCase(store.Runner(), store.ItemRepo(), store.TransactionRepo())
	return uc, store
}

func mustCreateItem(t *testing.T, uc *ledger.LedgerUseCase, category, label string, initial int64) *entity.StockItem {
	t.Helper()
	item, err := uc.CreateItem(context.Background(), category, label, decimal.NewFromInt(initial))
	require.NoError(t, err, "el alta de %q no debe fallar", label)
	return item
}

func mustRecord(t *testing.T, uc *ledger.LedgerUseCase, itemID, txType string, quantity int64, description, date string) string {
	t.Helper()
	id, err := uc.RecordTransaction(context.Background(), ledger.RecordTransactionInput{
		ItemID:      itemID,
		Type:        txType,
		Quantity:    decimal.NewFromInt(quantity),
		Description: description,
		Date:        date,
	})
	require.NoError(t, err, "el asiento %s %d no debe fallar", txType, quantity)
	return id
}

func stockOf(t *testing.T, uc *ledger.LedgerUseCase, itemID string) decimal.Decimal {
	t.Helper()
	stock, err := uc.GetStock(context.Background(), itemID)
	require.NoError(t, err)
	return stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de items
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_ConCantidadInicial(t *testing.T) {
	uc, _ := newUseCase(t)

	item := mustCreateItem(t, uc, entity.CategoryIron, "Φ12", 50)

	assert.True(t, stockOf(t, uc, item.ID).Equal(decimal.NewFromInt(50)),
		"el stock debe reflejar la cantidad inicial de inmediato")

	book, err := uc.ListTransactions(context.Background(), item.ID, "")
	require.NoError(t, err)
	require.Len(t, book, 1, "debe existir exactamente un asiento de alta")
	assert.Equal(t, entity.TransactionTypeIN, book[0].Type)
	assert.True(t, book[0].Quantity.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, entity.DescriptionInitialInventory, book[0].Description)
}

func TestCreateItem_SinCantidadInicial(t *testing.T) {
	uc, _ := newUseCase(t)

	item := mustCreateItem(t, uc, entity.CategoryCement, "Cement In Warehouse", 0)

	assert.True(t, stockOf(t, uc, item.ID).IsZero(), "sin cantidad inicial el stock nace en cero")

	book, err := uc.ListTransactions(context.Background(), item.ID, "")
	require.NoError(t, err)
	assert.Empty(t, book, "sin cantidad inicial no debe generarse ningún asiento")
}

func TestCreateItem_Validaciones(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.CreateItem(context.Background(), "wood", "tablas", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "categoría desconocida")

	_, err = uc.CreateItem(context.Background(), entity.CategoryIron, "", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "label vacío")

	_, err = uc.CreateItem(context.Background(), entity.CategoryIron, "Φ8", decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad inicial negativa")
}

func TestCreateItem_DisplayOrderAlFinal(t *testing.T) {
	uc, _ := newUseCase(t)

	first := mustCreateItem(t, uc, entity.CategoryIron, "Φ8", 0)
	second := mustCreateItem(t, uc, entity.CategoryIron, "Φ10", 0)

	assert.Equal(t, 0, first.DisplayOrder, "el primer item arranca en 0")
	assert.Equal(t, 1, second.DisplayOrder, "los siguientes van al final (max + 1)")
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de asientos
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de obra completo: entrega, consumo en faena y salida rechazada.
func TestRecordTransaction_EscenarioObra(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryIron, "Φ12", 0)

	mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 200, "Delivery", "")
	mustRecord(t, uc, item.ID, entity.TransactionTypeOUT, 50, "Site A", "")

	assert.True(t, stockOf(t, uc, item.ID).Equal(decimal.NewFromInt(150)))

	_, err := uc.RecordTransaction(context.Background(), ledger.RecordTransactionInput{
		ItemID:   item.ID,
		Type:     entity.TransactionTypeOUT,
		Quantity: decimal.NewFromInt(200),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"una salida mayor al balance debe rechazarse")
	assert.True(t, stockOf(t, uc, item.ID).Equal(decimal.NewFromInt(150)),
		"el rechazo no puede alterar el stock")
}

func TestRecordTransaction_Validaciones(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryGasoline, "Gasoil", 0)

	ctx := context.Background()

	_, err := uc.RecordTransaction(ctx, ledger.RecordTransactionInput{
		ItemID: item.ID, Type: entity.TransactionTypeIN, Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad cero")

	_, err = uc.RecordTransaction(ctx, ledger.RecordTransactionInput{
		ItemID: item.ID, Type: entity.TransactionTypeIN, Quantity: decimal.NewFromInt(-3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad negativa")

	_, err = uc.RecordTransaction(ctx, ledger.RecordTransactionInput{
		ItemID: item.ID, Type: "TRANSFER", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.RecordTransaction(ctx, ledger.RecordTransactionInput{
		ItemID: item.ID, Type: entity.TransactionTypeIN, Quantity: decimal.NewFromInt(1), Date: "03/2024",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fecha mal formada")

	_, err = uc.RecordTransaction(ctx, ledger.RecordTransactionInput{
		ItemID: "no-existe", Type: entity.TransactionTypeIN, Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "item desconocido")
}

func TestRecordTransaction_FechaPorDefectoEsHoy(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryCement, "Cement In Warehouse", 0)

	mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 10, "", "")

	book, err := uc.ListTransactions(context.Background(), item.ID, "")
	require.NoError(t, err)
	require.Len(t, book, 1)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"),
		book[0].TransactionDate.Format("2006-01-02"),
		"sin fecha explícita el asiento queda fechado hoy")
}

// Dos salidas concurrentes sobre el mismo item no pueden validar ambas contra
// el mismo balance: una gana y la otra recibe stock insuficiente.
func TestRecordTransaction_SalidasConcurrentes(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryGasoline, "Gasoil", 100)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordTransaction(context.Background(), ledger.RecordTransactionInput{
				ItemID:   item.ID,
				Type:     entity.TransactionTypeOUT,
				Quantity: decimal.NewFromInt(60),
			})
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactamente una de las dos salidas debe perder")
	assert.True(t, stockOf(t, uc, item.ID).Equal(decimal.NewFromInt(40)),
		"solo la salida ganadora debe reflejarse en el balance")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación de asientos
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelTransaction_SalidaSiempreProcede(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryIron, "Φ16", 100)
	outID := mustRecord(t, uc, item.ID, entity.TransactionTypeOUT, 40, "Site B", "")

	require.NoError(t, uc.CancelTransaction(context.Background(), outID))
	assert.True(t, stockOf(t, uc, item.ID).Equal(decimal.NewFromInt(100)),
		"cancelar una salida devuelve su cantidad al balance")
}

func TestCancelTransaction_EntradaProtegida(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryIron, "Φ20", 0)

	inID := mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 100, "Delivery", "")
	mustRecord(t, uc, item.ID, entity.TransactionTypeOUT, 80, "Site A", "")

	err := uc.CancelTransaction(context.Background(), inID)
	assert.ErrorIs(t, err, domain.ErrWouldGoNegative,
		"las salidas ya consumieron ese stock: quitar la entrada dejaría -80")
	assert.True(t, stockOf(t, uc, item.ID).Equal(decimal.NewFromInt(20)),
		"el rechazo no puede alterar el balance")

	// Una entrada adicional cubre la cancelación: ahora sí procede.
	mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 80, "Delivery 2", "")
	require.NoError(t, uc.CancelTransaction(context.Background(), inID))
	assert.True(t, stockOf(t, uc, item.ID).IsZero())
}

func TestCancelTransaction_NoExiste(t *testing.T) {
	uc, _ := newUseCase(t)
	err := uc.CancelTransaction(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste absoluto (edición rápida de la ficha)
// ──────────────────────────────────────────────────────────────────────────────

func TestSetQuantity_GeneraAsientoDeAjuste(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryCement, "Cement In Warehouse", 30)

	ctx := context.Background()

	require.NoError(t, uc.SetQuantity(ctx, item.ID, decimal.NewFromInt(100)))
	assert.True(t, stockOf(t, uc, item.ID).Equal(decimal.NewFromInt(100)))

	book, err := uc.ListTransactions(ctx, item.ID, "")
	require.NoError(t, err)
	require.Len(t, book, 2, "el ajuste se registra como asiento, no como columna cruda")
	assert.Equal(t, entity.DescriptionManualAdjustment, book[0].Description)
	assert.Equal(t, entity.TransactionTypeIN, book[0].Type)
	assert.True(t, book[0].Quantity.Equal(decimal.NewFromInt(70)))

	// Bajar el balance genera la salida equivalente.
	require.NoError(t, uc.SetQuantity(ctx, item.ID, decimal.NewFromInt(40)))
	assert.True(t, stockOf(t, uc, item.ID).Equal(decimal.NewFromInt(40)))

	// Fijar el mismo valor no ensucia el libro.
	require.NoError(t, uc.SetQuantity(ctx, item.ID, decimal.NewFromInt(40)))
	book, err = uc.ListTransactions(ctx, item.ID, "")
	require.NoError(t, err)
	assert.Len(t, book, 3)
}

func TestSetQuantity_Validaciones(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryCement, "Cement In Warehouse", 0)

	err := uc.SetQuantity(context.Background(), item.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	err = uc.SetQuantity(context.Background(), "no-existe", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reordenamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestReorderItems(t *testing.T) {
	uc, _ := newUseCase(t)
	a := mustCreateItem(t, uc, entity.CategoryIron, "Φ8", 0)
	b := mustCreateItem(t, uc, entity.CategoryIron, "Φ10", 0)
	c := mustCreateItem(t, uc, entity.CategoryIron, "Φ12", 0)
	d := mustCreateItem(t, uc, entity.CategoryIron, "Φ14", 0)

	require.NoError(t, uc.ReorderItems(context.Background(), []string{c.ID, a.ID, b.ID}))

	items, err := uc.ListItems(context.Background(), entity.CategoryIron)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, []string{c.ID, a.ID, b.ID, d.ID}, []string{items[0].ID, items[1].ID, items[2].ID, items[3].ID},
		"los mencionados quedan 0..N-1 y el no mencionado conserva su clave")
}

func TestReorderItems_IDDesconocidoSinEfectoParcial(t *testing.T) {
	uc, _ := newUseCase(t)
	a := mustCreateItem(t, uc, entity.CategoryIron, "Φ8", 0)
	b := mustCreateItem(t, uc, entity.CategoryIron, "Φ10", 0)

	err := uc.ReorderItems(context.Background(), []string{b.ID, "no-existe", a.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	items, err := uc.ListItems(context.Background(), entity.CategoryIron)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, []string{items[0].ID, items[1].ID},
		"un id desconocido no puede dejar el orden a medio aplicar")
}

func TestReorderItems_ListaVacia(t *testing.T) {
	uc, _ := newUseCase(t)
	assert.ErrorIs(t, uc.ReorderItems(context.Background(), nil), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados del libro
// ──────────────────────────────────────────────────────────────────────────────

func TestListTransactions_FiltroMensual(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryIron, "Φ12", 0)

	mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 10, "marzo temprano", "2024-03-05")
	mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 20, "marzo tarde", "2024-03-20")
	mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 30, "abril", "2024-04-01")

	book, err := uc.ListTransactions(context.Background(), item.ID, "2024-03")
	require.NoError(t, err)
	require.Len(t, book, 2, "solo los asientos con fecha de negocio en 2024-03")
	assert.Equal(t, "marzo tarde", book[0].Description, "más reciente primero")
	assert.Equal(t, "marzo temprano", book[1].Description)

	_, err = uc.ListTransactions(context.Background(), item.ID, "marzo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el filtro debe ser YYYY-MM")
}

func TestListTransactions_DesempataPorInstanteDeRegistro(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryIron, "Φ12", 0)

	mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 1, "primero", "2024-03-10")
	mustRecord(t, uc, item.ID, entity.TransactionTypeIN, 2, "segundo", "2024-03-10")

	book, err := uc.ListTransactions(context.Background(), item.ID, "")
	require.NoError(t, err)
	require.Len(t, book, 2)
	assert.Equal(t, "segundo", book[0].Description,
		"a igual fecha de negocio gana el registrado más tarde")
}

func TestListAllTransactions_PorCategoria(t *testing.T) {
	uc, _ := newUseCase(t)
	iron := mustCreateItem(t, uc, entity.CategoryIron, "Φ12", 10)
	mustCreateItem(t, uc, entity.CategoryCement, "Cement In Warehouse", 5)

	all, err := uc.ListAllTransactions(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ironOnly, err := uc.ListAllTransactions(context.Background(), entity.CategoryIron)
	require.NoError(t, err)
	require.Len(t, ironOnly, 1)
	assert.Equal(t, iron.ID, ironOnly[0].ItemID)

	_, err = uc.ListAllTransactions(context.Background(), "wood")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación de items
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteItem_CascadaSobreElLibro(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryGasoline, "Gasoil", 25)

	require.NoError(t, uc.DeleteItem(context.Background(), item.ID))

	_, err := uc.GetStock(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := uc.ListAllTransactions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all, "el libro del item eliminado cae con él, sin asientos huérfanos")

	assert.ErrorIs(t, uc.DeleteItem(context.Background(), item.ID), domain.ErrNotFound)
}

func TestGetStock_SinTransaccionesEsCero(t *testing.T) {
	uc, _ := newUseCase(t)
	item := mustCreateItem(t, uc, entity.CategoryIron, "Φ25", 0)
	assert.True(t, stockOf(t, uc, item.ID).IsZero())
}
