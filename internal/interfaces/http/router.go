package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *ledger.LedgerUseCase
	ReconcileUC *ledger.ReconcileUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	storage := api.Group("/storage")

	itemHandler := NewItemHandler(deps.LedgerUC)
	transactionHandler := NewTransactionHandler(deps.LedgerUC)
	reconcileHandler := NewReconcileHandler(deps.ReconcileUC)

	items := storage.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	// /reorder antes de /:id para que Fiber no lo capture como parámetro
	items.Put("/reorder", itemHandler.Reorder)
	items.Put("/:id/quantity", itemHandler.SetQuantity)
	items.Get("/:id/stock", itemHandler.GetStock)
	items.Get("/:id/transactions", transactionHandler.ListByItem)
	items.Delete("/:id", itemHandler.Delete)

	transactions := storage.Group("/transactions")
	transactions.Post("/", transactionHandler.Record)
	transactions.Get("/", transactionHandler.ListAll)
	transactions.Delete("/:id", transactionHandler.Cancel)

	storage.Get("/levels", reconcileHandler.Levels)
	storage.Post("/reconcile", reconcileHandler.Run)
}
