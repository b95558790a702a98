package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para las vistas operativas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ListBelowMinimum devuelve productos vivos en o por debajo de su mínimo.
// El orden final (brecha, nombre) lo decide la capa de aplicación.
func (r *AnalyticsRepo) ListBelowMinimum(ctx context.Context) ([]repository.CriticalStockRow, error) {
	query := `
		SELECT id, name, unit, current_stock, minimum_stock
		FROM products
		WHERE deleted_at IS NULL
		  AND minimum_stock > 0
		  AND current_stock <= minimum_stock`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()

	var out []repository.CriticalStockRow
	for rows.Next() {
		var row repository.CriticalStockRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Unit, &row.CurrentStock, &row.MinimumStock); err != nil {
			return nil, fmt.Errorf("scan critical row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListExpiringItems devuelve líneas vivas de entradas con vencimiento anterior
// a before. Incluye vencidos; la ventana inferior la aplica la capa de aplicación.
func (r *AnalyticsRepo) ListExpiringItems(ctx context.Context, before time.Time) ([]repository.ExpiringItemRow, error) {
	query := `
		SELECT t.id, t.counterparty, i.product_id, p.name, i.quantity, i.validity
		FROM transaction_items i
		JOIN transactions t ON t.id = i.transaction_id
		JOIN products p ON p.id = i.product_id
		WHERE t.kind = 'entry'
		  AND t.deleted_at IS NULL
		  AND i.validity IS NOT NULL
		  AND i.validity < $1`
	rows, err := r.q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("list expiring items: %w", err)
	}
	defer rows.Close()

	var out []repository.ExpiringItemRow
	for rows.Next() {
		var row repository.ExpiringItemRow
		if err := rows.Scan(&row.TransactionID, &row.Counterparty, &row.ProductID, &row.ProductName, &row.Quantity, &row.Validity); err != nil {
			return nil, fmt.Errorf("scan expiring row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TotalStock suma el stock vivo de todo el catálogo.
func (r *AnalyticsRepo) TotalStock(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(current_stock), 0) FROM products WHERE deleted_at IS NULL`
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// CountProducts cuenta productos vivos.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
