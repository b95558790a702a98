package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, name, COALESCE(category_id, ''), COALESCE(sector_id, ''), unit,
	minimum_stock, unit_price, current_stock, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.CategoryID, &p.SectorID, &p.Unit,
		&p.MinimumStock, &p.UnitPrice, &p.CurrentStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta un producto nuevo (stock inicial cero).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, category_id, sector_id, unit,
			minimum_stock, unit_price, current_stock, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.CategoryID, p.SectorID, p.Unit,
		p.MinimumStock, p.UnitPrice, p.CurrentStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", translateErr(err))
	}
	return nil
}

// Update modifica clasificación y parámetros; nunca current_stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET code = $2, name = $3, category_id = NULLIF($4, ''), sector_id = NULLIF($5, ''),
			unit = $6, minimum_stock = $7, unit_price = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.CategoryID, p.SectorID,
		p.Unit, p.MinimumStock, p.UnitPrice, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", translateErr(err))
	}
	return nil
}

// SoftDelete marca el producto como borrado lógico.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE products SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	return nil
}

// GetByID devuelve el producto vivo o nil si no existe o está borrado.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List devuelve productos vivos paginados, filtrando por nombre o código.
func (r *ProductRepo) List(ctx context.Context, filter string, limit, offset int) ([]entity.Product, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM products
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%')`
	if err := r.q.QueryRow(ctx, countQuery, filter).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

// GetManyForUpdate carga los productos vivos indicados bloqueando sus filas
// (SELECT ... FOR UPDATE). El ORDER BY id garantiza un orden de bloqueo
// determinista entre operaciones concurrentes con conjuntos solapados.
func (r *ProductRepo) GetManyForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1) AND deleted_at IS NULL
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", translateErr(err))
	}
	defer rows.Close()

	out := make(map[string]*entity.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan locked product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// AddStock suma delta (puede ser negativo) al stock del producto ya bloqueado.
func (r *ProductRepo) AddStock(ctx context.Context, id string, delta int64) error {
	query := `
		UPDATE products
		SET current_stock = current_stock + $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("add stock: %w", translateErr(err))
	}
	return nil
}

// SetStock fija el stock en un valor absoluto (recompute/auditoría).
func (r *ProductRepo) SetStock(ctx context.Context, id string, value int64) error {
	query := `
		UPDATE products
		SET current_stock = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}
