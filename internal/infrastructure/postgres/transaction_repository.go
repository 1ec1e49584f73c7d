package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del libro de transacciones sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un asiento del libro.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (id, item_id, type, quantity, description, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	description := (*string)(nil)
	if t.Description != "" {
		description = &t.Description
	}
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ItemID, t.Type, t.Quantity, description, t.TransactionDate, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID. nil, nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `
		SELECT id, item_id, type, quantity, description, transaction_date, created_at
		FROM transactions WHERE id = $1`
	var t entity.Transaction
	var description *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ItemID, &t.Type, &t.Quantity, &description, &t.TransactionDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if description != nil {
		t.Description = *description
	}
	return &t, nil
}

// Delete elimina un asiento (cancelación dura; la validación vive en el caso de uso).
func (r *TransactionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// SumByItem devuelve la suma firmada del libro de un item; cero si no tiene asientos.
func (r *TransactionRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END), 0)
		FROM transactions WHERE item_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	return total, nil
}

// ListByItem lista el libro de un item, fecha de negocio DESC y registro DESC.
// from/to acotan transaction_date como [from, to).
func (r *TransactionRepo) ListByItem(itemID string, from, to *time.Time) ([]*entity.Transaction, error) {
	query := `
		SELECT id, item_id, type, quantity, description, transaction_date, created_at
		FROM transactions WHERE item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND transaction_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND transaction_date < $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY transaction_date DESC, created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions by item: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListAll lista el libro completo, opcionalmente por categoría del item, mismo orden.
func (r *TransactionRepo) ListAll(category string) ([]*entity.Transaction, error) {
	query := `
		SELECT t.id, t.item_id, t.type, t.quantity, t.description, t.transaction_date, t.created_at
		FROM transactions t`
	args := []any{}
	if category != "" {
		query += " JOIN items i ON i.id = t.item_id WHERE i.category = $1"
		args = append(args, category)
	}
	query += " ORDER BY t.transaction_date DESC, t.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		var description *string
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Type, &t.Quantity, &description, &t.TransactionDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if description != nil {
			t.Description = *description
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
