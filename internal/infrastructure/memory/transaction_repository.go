package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
	"github.com/jhoicas/almacen-solidario/internal/domain/stock"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger de transacciones en memoria.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepository construye el repositorio sobre el almacén dado.
func NewTransactionRepository(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.transactions[t.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.transactions[t.ID] = copyTransaction(t)
	r.store.txOrder = append(r.store.txOrder, t.ID)
	return nil
}

func (r *TransactionRepo) Replace(_ context.Context, t *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.transactions[t.ID]
	if !ok || current.Deleted() {
		return domain.ErrNotFound
	}
	r.store.transactions[t.ID] = copyTransaction(t)
	return nil
}

func (r *TransactionRepo) SoftDelete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if t, ok := r.store.transactions[id]; ok && !t.Deleted() {
		now := time.Now()
		t.DeletedAt = &now
	}
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, kind entity.TransactionKind, id string) (*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transactions[id]
	if !ok || t.Deleted() || t.Kind != kind {
		return nil, nil
	}
	out := copyTransaction(t)
	r.resolveNames(out)
	return out, nil
}

func (r *TransactionRepo) List(_ context.Context, kind entity.TransactionKind, f repository.TransactionFilter) ([]entity.Transaction, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	needle := strings.ToLower(f.Search)
	var all []entity.Transaction
	// txOrder va del más viejo al más reciente; se recorre al revés.
	for i := len(r.store.txOrder) - 1; i >= 0; i-- {
		t := r.store.transactions[r.store.txOrder[i]]
		if t.Deleted() || t.Kind != kind {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Counterparty), needle) &&
			!strings.Contains(strings.ToLower(t.NoteNumber), needle) {
			continue
		}
		out := copyTransaction(t)
		r.resolveNames(out)
		all = append(all, *out)
	}

	total := len(all)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r *TransactionRepo) LiveItemsByProduct(_ context.Context, productID string) ([]stock.FoldItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var items []stock.FoldItem
	for _, id := range r.store.txOrder {
		t := r.store.transactions[id]
		if t.Deleted() {
			continue
		}
		for _, item := range t.Items {
			if item.ProductID == productID {
				items = append(items, stock.FoldItem{Kind: t.Kind, Quantity: item.Quantity})
			}
		}
	}
	return items, nil
}

func (r *TransactionRepo) CountLiveRefs(_ context.Context, productID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, t := range r.store.transactions {
		if t.Deleted() {
			continue
		}
		for _, item := range t.Items {
			if item.ProductID == productID {
				n++
			}
		}
	}
	return n, nil
}

// resolveNames emula el JOIN con products de los listados SQL.
func (r *TransactionRepo) resolveNames(t *entity.Transaction) {
	for i := range t.Items {
		if p, ok := r.store.products[t.Items[i].ProductID]; ok {
			t.Items[i].ProductName = p.Name
		}
	}
}
