package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

var _ repository.BasketRepository = (*BasketRepo)(nil)

// BasketRepo cestas en memoria.
type BasketRepo struct {
	store *Store
}

// NewBasketRepository construye el repositorio sobre el almacén dado.
func NewBasketRepository(store *Store) *BasketRepo {
	return &BasketRepo{store: store}
}

func (r *BasketRepo) Create(_ context.Context, b *entity.Basket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.baskets {
		if existing.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	r.store.baskets[b.ID] = copyBasket(b)
	r.store.basketOrder = append(r.store.basketOrder, b.ID)
	return nil
}

func (r *BasketRepo) Update(_ context.Context, b *entity.Basket, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.baskets[b.ID]
	if !ok || current.Version != expectedVersion {
		return domain.ErrConflict
	}
	r.store.baskets[b.ID] = copyBasket(b)
	return nil
}

func (r *BasketRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.baskets, id)
	for i, bid := range r.store.basketOrder {
		if bid == id {
			r.store.basketOrder = append(r.store.basketOrder[:i], r.store.basketOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *BasketRepo) GetByID(_ context.Context, id string) (*entity.Basket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.baskets[id]
	if !ok {
		return nil, nil
	}
	return copyBasket(b), nil
}

func (r *BasketRepo) List(_ context.Context, limit, offset int) ([]entity.Basket, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var all []entity.Basket
	for _, b := range r.store.baskets {
		all = append(all, *copyBasket(b))
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
