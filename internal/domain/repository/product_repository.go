package repository

import (
	"context"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
)

// ProductRepository acceso a productos del catálogo.
// Los métodos de stock solo deben invocarse desde el proyector, dentro de una
// transacción de BD (repositorio atado a la tx vía TxRunner).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	// SoftDelete marca el producto como borrado lógico.
	SoftDelete(ctx context.Context, id string) error
	// GetByID devuelve el producto vivo o nil si no existe o está borrado.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter string, limit, offset int) ([]entity.Product, int, error)

	// GetManyForUpdate carga los productos vivos indicados bloqueando sus filas
	// (SELECT ... FOR UPDATE) en orden ascendente de id. Devuelve un mapa id -> producto.
	GetManyForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// AddStock suma delta (puede ser negativo) al stock del producto ya bloqueado.
	AddStock(ctx context.Context, id string, delta int64) error
	// SetStock fija el stock en un valor absoluto (recompute/auditoría).
	SetStock(ctx context.Context, id string, value int64) error
}
