// Comando seed: carga el catálogo estándar del almacén de obra en una BD vacía.
// Pasa por el caso de uso, no por SQL directo, para que cualquier cantidad
// inicial genere su asiento "Initial Inventory".
package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de BD")
	}

	itemRepo := postgres.NewStockItemRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	uc := ledger.NewLedgerUseCase(postgres.NewTxRunner(pool), itemRepo, txRepo)

	existing, err := uc.ListItems(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("listar items")
	}
	if len(existing) > 0 {
		log.Info().Int("items", len(existing)).Msg("catálogo ya inicializado, nada que hacer")
		return
	}

	catalogue := []struct {
		category string
		label    string
	}{
		{entity.CategoryIron, "Φ6"},
		{entity.CategoryIron, "Φ8"},
		{entity.CategoryIron, "Φ10"},
		{entity.CategoryIron, "Φ12"},
		{entity.CategoryIron, "Φ14"},
		{entity.CategoryIron, "Φ16"},
		{entity.CategoryIron, "Φ20"},
		{entity.CategoryIron, "Φ25"},
		{entity.CategoryCement, "Cement In Warehouse"},
		{entity.CategoryGasoline, "Gasoil"},
	}

	for _, c := range catalogue {
		item, err := uc.CreateItem(ctx, c.category, c.label, decimal.Zero)
		if err != nil {
			log.Fatal().Err(err).Str("label", c.label).Msg("crear item")
		}
		log.Info().Str("id", item.ID).Str("category", item.Category).Str("label", item.Label).Msg("item creado")
	}
	log.Info().Int("items", len(catalogue)).Msg("catálogo inicializado")
}
