package repository

import (
	"context"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
)

// CategoryRepository catálogo de categorías.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
}

// SectorRepository catálogo de sectores.
type SectorRepository interface {
	Create(ctx context.Context, s *entity.Sector) error
	Update(ctx context.Context, s *entity.Sector) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Sector, error)
	List(ctx context.Context) ([]entity.Sector, error)
}

// SupplierRepository registro de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context) ([]entity.Supplier, error)
}
