package memory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo vistas de solo lectura sobre el almacén en memoria.
type AnalyticsRepo struct {
	store *Store
}

// NewAnalyticsRepository construye el repositorio sobre el almacén dado.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{store: store}
}

func (r *AnalyticsRepo) ListBelowMinimum(_ context.Context) ([]repository.CriticalStockRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []repository.CriticalStockRow
	for _, p := range r.store.products {
		if p.Deleted() || p.MinimumStock <= 0 || p.StockGap() < 0 {
			continue
		}
		out = append(out, repository.CriticalStockRow{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Unit:         p.Unit,
			CurrentStock: p.CurrentStock,
			MinimumStock: p.MinimumStock,
		})
	}
	return out, nil
}

func (r *AnalyticsRepo) ListExpiringItems(_ context.Context, before time.Time) ([]repository.ExpiringItemRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []repository.ExpiringItemRow
	for _, id := range r.store.txOrder {
		t := r.store.transactions[id]
		if t.Deleted() || t.Kind != entity.KindEntry {
			continue
		}
		for _, item := range t.Items {
			if item.Validity == nil || !item.Validity.Before(before) {
				continue
			}
			name := ""
			if p, ok := r.store.products[item.ProductID]; ok {
				name = p.Name
			}
			out = append(out, repository.ExpiringItemRow{
				TransactionID: t.ID,
				Counterparty:  t.Counterparty,
				ProductID:     item.ProductID,
				ProductName:   name,
				Quantity:      item.Quantity,
				Validity:      *item.Validity,
			})
		}
	}
	return out, nil
}

func (r *AnalyticsRepo) TotalStock(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var total int64
	for _, p := range r.store.products {
		if !p.Deleted() {
			total += p.CurrentStock
		}
	}
	return total, nil
}

func (r *AnalyticsRepo) CountProducts(_ context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, p := range r.store.products {
		if !p.Deleted() {
			n++
		}
	}
	return n, nil
}
