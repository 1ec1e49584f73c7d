// Package ledgertest provee una implementación en memoria de los puertos de
// persistencia del motor, para tests sin PostgreSQL. El Runner toma un mutex
// global del Store durante cada callback: misma garantía que la tx de BD con
// bloqueo de fila, el check-then-write queda serializado.
package ledgertest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	ledgermath "github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Store estado compartido de los repos en memoria.
type Store struct {
	mu     sync.Mutex
	items  map[string]*entity.StockItem
	trans  map[string]*storedTransaction
	levels map[string]*entity.StockLevel
	seq    int
}

// storedTransaction lleva un número de inserción para desempatar el orden
// cuando dos asientos comparten fecha e instante de registro.
type storedTransaction struct {
	entity.Transaction
	seq int
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		items:  make(map[string]*entity.StockItem),
		trans:  make(map[string]*storedTransaction),
		levels: make(map[string]*entity.StockLevel),
	}
}

// ItemRepo devuelve un repo de items atado al Store (bloquea por llamada, como el pool).
func (s *Store) ItemRepo() repository.StockItemRepository { return &itemRepo{s: s, lock: true} }

// TransactionRepo devuelve un repo del libro atado al Store.
func (s *Store) TransactionRepo() repository.TransactionRepository {
	return &transactionRepo{s: s, lock: true}
}

// LevelRepo devuelve el repo de la caché de niveles.
func (s *Store) LevelRepo() repository.StockLevelRepository { return &levelRepo{s: s, lock: true} }

// Runner devuelve un TxRunner que serializa cada callback con el mutex del Store.
func (s *Store) Runner() *Runner { return &Runner{s: s} }

// Runner ejecuta callbacks bajo el mutex del Store con repos sin bloqueo propio.
type Runner struct {
	s *Store
}

// Run toma el mutex, ejecuta fn con repos atados al estado y lo libera.
func (r *Runner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	txRepo repository.TransactionRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(&itemRepo{s: r.s}, &transactionRepo{s: r.s})
}

// ── items ────────────────────────────────────────────────────────────────────

type itemRepo struct {
	s    *Store
	lock bool
}

func (r *itemRepo) Create(item *entity.StockItem) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	clone := *item
	r.s.items[item.ID] = &clone
	return nil
}

func (r *itemRepo) GetByID(id string) (*entity.StockItem, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

// GetByIDForUpdate no necesita bloqueo adicional: el Runner ya serializa.
func (r *itemRepo) GetByIDForUpdate(id string) (*entity.StockItem, error) {
	return r.GetByID(id)
}

func (r *itemRepo) List(category string) ([]*entity.StockItem, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var list []*entity.StockItem
	for _, item := range r.s.items {
		if category != "" && item.Category != category {
			continue
		}
		clone := *item
		clone.CurrentStock = r.s.sumByItem(item.ID)
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DisplayOrder != list[j].DisplayOrder {
			return list[i].DisplayOrder < list[j].DisplayOrder
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (r *itemRepo) MaxDisplayOrder() (int, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	max := -1
	for _, item := range r.s.items {
		if item.DisplayOrder > max {
			max = item.DisplayOrder
		}
	}
	return max, nil
}

func (r *itemRepo) UpdateDisplayOrder(id string, order int) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if item, ok := r.s.items[id]; ok {
		item.DisplayOrder = order
	}
	return nil
}

func (r *itemRepo) Delete(id string) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	delete(r.s.items, id)
	// cascada como la FK en PostgreSQL
	for txID, t := range r.s.trans {
		if t.ItemID == id {
			delete(r.s.trans, txID)
		}
	}
	delete(r.s.levels, id)
	return nil
}

// ── transactions ─────────────────────────────────────────────────────────────

type transactionRepo struct {
	s    *Store
	lock bool
}

func (r *transactionRepo) Create(t *entity.Transaction) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.seq++
	r.s.trans[t.ID] = &storedTransaction{Transaction: *t, seq: r.s.seq}
	return nil
}

func (r *transactionRepo) GetByID(id string) (*entity.Transaction, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	t, ok := r.s.trans[id]
	if !ok {
		return nil, nil
	}
	clone := t.Transaction
	return &clone, nil
}

func (r *transactionRepo) Delete(id string) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	delete(r.s.trans, id)
	return nil
}

func (r *transactionRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	return r.s.sumByItem(itemID), nil
}

func (r *transactionRepo) ListByItem(itemID string, from, to *time.Time) ([]*entity.Transaction, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var list []*storedTransaction
	for _, t := range r.s.trans {
		if t.ItemID != itemID {
			continue
		}
		if from != nil && t.TransactionDate.Before(*from) {
			continue
		}
		if to != nil && !t.TransactionDate.Before(*to) {
			continue
		}
		list = append(list, t)
	}
	return sortedClones(list), nil
}

func (r *transactionRepo) ListAll(category string) ([]*entity.Transaction, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var list []*storedTransaction
	for _, t := range r.s.trans {
		if category != "" {
			item, ok := r.s.items[t.ItemID]
			if !ok || item.Category != category {
				continue
			}
		}
		list = append(list, t)
	}
	return sortedClones(list), nil
}

// sortedClones ordena más reciente primero: fecha de negocio, instante de
// registro y número de inserción como último desempate.
func sortedClones(list []*storedTransaction) []*entity.Transaction {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].TransactionDate.Equal(list[j].TransactionDate) {
			return list[i].TransactionDate.After(list[j].TransactionDate)
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].seq > list[j].seq
	})
	out := make([]*entity.Transaction, 0, len(list))
	for _, t := range list {
		clone := t.Transaction
		out = append(out, &clone)
	}
	return out
}

func (s *Store) sumByItem(itemID string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.trans {
		if t.ItemID == itemID {
			total = total.Add(ledgermath.Signed(&t.Transaction))
		}
	}
	return total
}

// ── stock levels ─────────────────────────────────────────────────────────────

type levelRepo struct {
	s    *Store
	lock bool
}

func (r *levelRepo) Get(itemID string) (*entity.StockLevel, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	level, ok := r.s.levels[itemID]
	if !ok {
		return nil, nil
	}
	clone := *level
	return &clone, nil
}

func (r *levelRepo) Upsert(level *entity.StockLevel) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	clone := *level
	r.s.levels[level.ItemID] = &clone
	return nil
}

func (r *levelRepo) List() ([]*entity.StockLevel, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var list []*entity.StockLevel
	for _, level := range r.s.levels {
		clone := *level
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
	return list, nil
}
