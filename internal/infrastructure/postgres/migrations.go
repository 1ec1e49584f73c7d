package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas del motor si no existen. Idempotente, se ejecuta
// en el arranque. ON DELETE CASCADE: al eliminar un item su libro y su nivel
// cacheado caen con él, nunca quedan asientos huérfanos.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id            UUID PRIMARY KEY,
			category      TEXT NOT NULL CHECK (category IN ('iron', 'cement', 'gasoline')),
			label         TEXT NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id               UUID PRIMARY KEY,
			item_id          UUID NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			type             TEXT NOT NULL CHECK (type IN ('IN', 'OUT')),
			quantity         NUMERIC NOT NULL CHECK (quantity > 0),
			description      TEXT,
			transaction_date DATE NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_item_date
			ON transactions (item_id, transaction_date DESC, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS stock_levels (
			item_id    UUID PRIMARY KEY REFERENCES items(id) ON DELETE CASCADE,
			quantity   NUMERIC NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
