package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SectorRepository   = (*SectorRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CategoryRepo catálogo de categorías sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", translateErr(err))
	}
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("update category: %w", translateErr(err))
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SectorRepo catálogo de sectores sobre PostgreSQL.
type SectorRepo struct {
	q Querier
}

// NewSectorRepository construye el adaptador de sectores.
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

func (r *SectorRepo) Create(ctx context.Context, s *entity.Sector) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sectors (id, name, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sector: %w", translateErr(err))
	}
	return nil
}

func (r *SectorRepo) Update(ctx context.Context, s *entity.Sector) error {
	_, err := r.q.Exec(ctx, `UPDATE sectors SET name = $2 WHERE id = $1`, s.ID, s.Name)
	if err != nil {
		return fmt.Errorf("update sector: %w", translateErr(err))
	}
	return nil
}

func (r *SectorRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sectors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sector: %w", err)
	}
	return nil
}

func (r *SectorRepo) GetByID(ctx context.Context, id string) (*entity.Sector, error) {
	var s entity.Sector
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM sectors WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return &s, nil
}

func (r *SectorRepo) List(ctx context.Context) ([]entity.Sector, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM sectors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()

	var out []entity.Sector
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SupplierRepo registro de proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, document, phone, email, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Document, s.Phone, s.Email, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", translateErr(err))
	}
	return nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, document = NULLIF($3, ''), phone = NULLIF($4, ''), email = NULLIF($5, '')
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Document, s.Phone, s.Email)
	if err != nil {
		return fmt.Errorf("update supplier: %w", translateErr(err))
	}
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, name, COALESCE(document, ''), COALESCE(phone, ''), COALESCE(email, ''), created_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Document, &s.Phone, &s.Email, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]entity.Supplier, error) {
	query := `
		SELECT id, name, COALESCE(document, ''), COALESCE(phone, ''), COALESCE(email, ''), created_at
		FROM suppliers ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Document, &s.Phone, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
