package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

var _ repository.BasketRepository = (*BasketRepo)(nil)

// BasketRepo implementación de BasketRepository sobre PostgreSQL.
type BasketRepo struct {
	q Querier
}

// NewBasketRepository construye el adaptador de cestas.
func NewBasketRepository(q Querier) *BasketRepo {
	return &BasketRepo{q: q}
}

// withTx ejecuta fn dentro de una transacción propia cuando el Querier sabe
// abrirlas (pool, o tx vía savepoint). Encabezado y posiciones se escriben en
// varias sentencias: sin esto, un fallo a mitad dejaría una cesta parcial visible.
func (r *BasketRepo) withTx(ctx context.Context, fn func(q Querier) error) error {
	db, ok := r.q.(interface {
		Begin(ctx context.Context) (pgx.Tx, error)
	})
	if !ok {
		return fn(r.q)
	}
	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		return fn(tx)
	})
}

// Create inserta la cesta con sus posiciones; o queda completa o no queda.
func (r *BasketRepo) Create(ctx context.Context, b *entity.Basket) error {
	return r.withTx(ctx, func(q Querier) error {
		query := `
			INSERT INTO baskets (id, name, description, version, created_at, updated_at)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)`
		_, err := q.Exec(ctx, query, b.ID, b.Name, b.Description, b.Version, b.CreatedAt, b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert basket: %w", translateErr(err))
		}
		return insertBasketItems(ctx, q, b)
	})
}

// Update reemplaza la cesta solo si la versión almacenada coincide con la
// esperada; si otro caller editó en medio, devuelve domain.ErrConflict. El
// reemplazo completo (encabezado + posiciones) es atómico.
func (r *BasketRepo) Update(ctx context.Context, b *entity.Basket, expectedVersion int64) error {
	return r.withTx(ctx, func(q Querier) error {
		query := `
			UPDATE baskets
			SET name = $2, description = NULLIF($3, ''), version = $4, updated_at = $5
			WHERE id = $1 AND version = $6`
		tag, err := q.Exec(ctx, query, b.ID, b.Name, b.Description, b.Version, b.UpdatedAt, expectedVersion)
		if err != nil {
			return fmt.Errorf("update basket: %w", translateErr(err))
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrConflict
		}
		if _, err := q.Exec(ctx, `DELETE FROM basket_items WHERE basket_id = $1`, b.ID); err != nil {
			return fmt.Errorf("delete old basket items: %w", err)
		}
		return insertBasketItems(ctx, q, b)
	})
}

func insertBasketItems(ctx context.Context, q Querier, b *entity.Basket) error {
	query := `
		INSERT INTO basket_items (id, basket_id, product_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range b.Items {
		if _, err := q.Exec(ctx, query, item.ID, b.ID, item.ProductID, item.Quantity, item.Position); err != nil {
			return fmt.Errorf("insert basket item: %w", translateErr(err))
		}
	}
	return nil
}

// Delete borra la cesta físicamente (las posiciones caen por cascada).
func (r *BasketRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM baskets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete basket: %w", err)
	}
	return nil
}

// GetByID devuelve la cesta con sus posiciones, o nil si no existe.
func (r *BasketRepo) GetByID(ctx context.Context, id string) (*entity.Basket, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), version, created_at, updated_at
		FROM baskets WHERE id = $1`
	var b entity.Basket
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Description, &b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get basket: %w", err)
	}
	items, err := r.loadItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	b.Items = items[id]
	return &b, nil
}

// List devuelve cestas paginadas por nombre.
func (r *BasketRepo) List(ctx context.Context, limit, offset int) ([]entity.Basket, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM baskets`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count baskets: %w", err)
	}

	query := `
		SELECT id, name, COALESCE(description, ''), version, created_at, updated_at
		FROM baskets
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list baskets: %w", err)
	}
	defer rows.Close()

	var baskets []entity.Basket
	var ids []string
	for rows.Next() {
		var b entity.Basket
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Version, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan basket: %w", err)
		}
		baskets = append(baskets, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		items, err := r.loadItems(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range baskets {
			baskets[i].Items = items[baskets[i].ID]
		}
	}
	return baskets, total, nil
}

func (r *BasketRepo) loadItems(ctx context.Context, basketIDs []string) (map[string][]entity.BasketItem, error) {
	query := `
		SELECT id, basket_id, product_id, quantity, position
		FROM basket_items
		WHERE basket_id = ANY($1)
		ORDER BY basket_id, position`
	rows, err := r.q.Query(ctx, query, basketIDs)
	if err != nil {
		return nil, fmt.Errorf("load basket items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.BasketItem, len(basketIDs))
	for rows.Next() {
		var item entity.BasketItem
		if err := rows.Scan(&item.ID, &item.BasketID, &item.ProductID, &item.Quantity, &item.Position); err != nil {
			return nil, fmt.Errorf("scan basket item: %w", err)
		}
		out[item.BasketID] = append(out[item.BasketID], item)
	}
	return out, rows.Err()
}
