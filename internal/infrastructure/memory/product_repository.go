package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el repositorio sobre el almacén dado.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.products {
		if !existing.Deleted() && existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.store.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.products[p.ID]
	if !ok || current.Deleted() {
		return nil
	}
	current.Code = p.Code
	current.Name = p.Name
	current.CategoryID = p.CategoryID
	current.SectorID = p.SectorID
	current.Unit = p.Unit
	current.MinimumStock = p.MinimumStock
	current.UnitPrice = p.UnitPrice
	current.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *ProductRepo) SoftDelete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok && !p.Deleted() {
		now := time.Now()
		p.DeletedAt = &now
	}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok || p.Deleted() {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepo) List(_ context.Context, filter string, limit, offset int) ([]entity.Product, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	needle := strings.ToLower(filter)
	var all []entity.Product
	for _, p := range r.store.products {
		if p.Deleted() {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Code), needle) {
			continue
		}
		all = append(all, *copyProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *ProductRepo) GetManyForUpdate(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok && !p.Deleted() {
			out[id] = copyProduct(p)
		}
	}
	return out, nil
}

func (r *ProductRepo) AddStock(_ context.Context, id string, delta int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok && !p.Deleted() {
		p.CurrentStock += delta
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r *ProductRepo) SetStock(_ context.Context, id string, value int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok && !p.Deleted() {
		p.CurrentStock = value
		p.UpdatedAt = time.Now()
	}
	return nil
}
