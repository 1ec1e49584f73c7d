package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste un item nuevo.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO items (id, category, label, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Category, item.Label, item.DisplayOrder, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID (sin stock derivado). nil, nil si no existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `
		SELECT id, category, label, display_order, created_at
		FROM items WHERE id = $1`
	var i entity.StockItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Category, &i.Label, &i.DisplayOrder, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// GetByIDForUpdate obtiene el item y bloquea la fila (SELECT FOR UPDATE);
// serializa el check-then-write del libro por item.
func (r *StockItemRepo) GetByIDForUpdate(id string) (*entity.StockItem, error) {
	query := `
		SELECT id, category, label, display_order, created_at
		FROM items WHERE id = $1
		FOR UPDATE`
	var i entity.StockItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Category, &i.Label, &i.DisplayOrder, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return &i, nil
}

// List devuelve los items con su balance derivado embebido (suma firmada del
// libro, cero sin transacciones), ordenados por display_order.
func (r *StockItemRepo) List(category string) ([]*entity.StockItem, error) {
	query := `
		SELECT i.id, i.category, i.label, i.display_order, i.created_at,
		       COALESCE((SELECT SUM(CASE WHEN t.type = 'IN' THEN t.quantity ELSE -t.quantity END)
		                 FROM transactions t WHERE t.item_id = i.id), 0) AS current_stock
		FROM items i`
	args := []any{}
	if category != "" {
		query += " WHERE i.category = $1"
		args = append(args, category)
	}
	query += " ORDER BY i.display_order ASC, i.created_at ASC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var i entity.StockItem
		if err := rows.Scan(&i.ID, &i.Category, &i.Label, &i.DisplayOrder, &i.CreatedAt, &i.CurrentStock); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// MaxDisplayOrder devuelve el mayor display_order, -1 si la tabla está vacía.
func (r *StockItemRepo) MaxDisplayOrder() (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(display_order), -1) FROM items`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max display order: %w", err)
	}
	return max, nil
}

// UpdateDisplayOrder fija la clave de orden de un item.
func (r *StockItemRepo) UpdateDisplayOrder(id string, order int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET display_order = $2 WHERE id = $1`, id, order)
	if err != nil {
		return fmt.Errorf("update display order: %w", err)
	}
	return nil
}

// Delete elimina un item; las transacciones y el nivel cacheado caen por FK en cascada.
func (r *StockItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
