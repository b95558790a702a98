package repository

import (
	"context"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
)

// BasketRepository almacenamiento de cestas (plantillas, sin vínculo con stock).
type BasketRepository interface {
	Create(ctx context.Context, b *entity.Basket) error
	// Update reemplaza la cesta si expectedVersion coincide con la versión
	// almacenada; devuelve domain.ErrConflict si no.
	Update(ctx context.Context, b *entity.Basket, expectedVersion int64) error
	// Delete borrado físico: las cestas no participan del ledger.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Basket, error)
	List(ctx context.Context, limit, offset int) ([]entity.Basket, int, error)
}
