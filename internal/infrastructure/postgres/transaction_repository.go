package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
	"github.com/jhoicas/almacen-solidario/internal/domain/stock"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, kind, counterparty, COALESCE(note_number, ''),
	emission_date, movement_date, COALESCE(notes, ''), COALESCE(sector_id, ''),
	COALESCE(basket_id, ''), created_at, updated_at`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.Kind, &t.Counterparty, &t.NoteNumber,
		&t.EmissionDate, &t.MovementDate, &t.Notes, &t.SectorID,
		&t.BasketID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste la transacción con sus líneas.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, kind, counterparty, note_number, emission_date,
			movement_date, notes, sector_id, basket_id, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''),
			NULLIF($9, ''), $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Kind, t.Counterparty, t.NoteNumber, t.EmissionDate,
		t.MovementDate, t.Notes, t.SectorID, t.BasketID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", translateErr(err))
	}
	return r.insertItems(ctx, t)
}

// Replace sustituye encabezado y líneas bajo el mismo id (edición = reemplazo total).
func (r *TransactionRepo) Replace(ctx context.Context, t *entity.Transaction) error {
	query := `
		UPDATE transactions
		SET counterparty = $2, note_number = NULLIF($3, ''), emission_date = $4,
			movement_date = $5, notes = NULLIF($6, ''), sector_id = NULLIF($7, ''),
			updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.Counterparty, t.NoteNumber, t.EmissionDate,
		t.MovementDate, t.Notes, t.SectorID, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("replace transaction: %w", translateErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("replace transaction %s: no existe", t.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, t.ID); err != nil {
		return fmt.Errorf("delete old items: %w", err)
	}
	return r.insertItems(ctx, t)
}

func (r *TransactionRepo) insertItems(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, quantity,
			unit_price, unit, validity, sector_id, position)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9)`
	for i, item := range t.Items {
		_, err := r.q.Exec(ctx, query,
			item.ID, t.ID, item.ProductID, item.Quantity,
			item.UnitPrice, item.Unit, item.Validity, item.SectorID, i,
		)
		if err != nil {
			return fmt.Errorf("insert item %d: %w", i+1, translateErr(err))
		}
	}
	return nil
}

// SoftDelete marca la transacción como borrada (excluida de folds y listados).
func (r *TransactionRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE transactions SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	return nil
}

// GetByID devuelve la transacción viva del tipo dado con líneas y nombres
// resueltos, o nil si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, kind entity.TransactionKind, id string) (*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND kind = $2 AND deleted_at IS NULL`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	items, err := r.loadItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	t.Items = items[id]
	return t, nil
}

// List devuelve transacciones vivas del tipo dado, más recientes primero,
// filtrando por coincidencia parcial en contraparte o número de nota.
func (r *TransactionRepo) List(ctx context.Context, kind entity.TransactionKind, f repository.TransactionFilter) ([]entity.Transaction, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM transactions
		WHERE kind = $1 AND deleted_at IS NULL
		  AND ($2 = '' OR counterparty ILIKE '%' || $2 || '%' OR note_number ILIKE '%' || $2 || '%')`
	if err := r.q.QueryRow(ctx, countQuery, kind, f.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE kind = $1 AND deleted_at IS NULL
		  AND ($2 = '' OR counterparty ILIKE '%' || $2 || '%' OR note_number ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, kind, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []entity.Transaction
	var ids []string
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		items, err := r.loadItems(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range txs {
			txs[i].Items = items[txs[i].ID]
		}
	}
	return txs, total, nil
}

// loadItems carga las líneas de varias transacciones en una sola consulta,
// con nombre de producto resuelto para presentación.
func (r *TransactionRepo) loadItems(ctx context.Context, transactionIDs []string) (map[string][]entity.LineItem, error) {
	query := `
		SELECT i.id, i.transaction_id, i.product_id, p.name, i.quantity,
			i.unit_price, COALESCE(i.unit, ''), i.validity, COALESCE(i.sector_id, '')
		FROM transaction_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.transaction_id = ANY($1)
		ORDER BY i.transaction_id, i.position`
	rows, err := r.q.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.LineItem, len(transactionIDs))
	for rows.Next() {
		var item entity.LineItem
		if err := rows.Scan(
			&item.ID, &item.TransactionID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Unit, &item.Validity, &item.SectorID,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out[item.TransactionID] = append(out[item.TransactionID], item)
	}
	return out, rows.Err()
}

// LiveItemsByProduct devuelve las líneas vivas que referencian el producto
// (insumo del fold de recomputación).
func (r *TransactionRepo) LiveItemsByProduct(ctx context.Context, productID string) ([]stock.FoldItem, error) {
	query := `
		SELECT t.kind, i.quantity
		FROM transaction_items i
		JOIN transactions t ON t.id = i.transaction_id
		WHERE i.product_id = $1 AND t.deleted_at IS NULL`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("live items by product: %w", err)
	}
	defer rows.Close()

	var items []stock.FoldItem
	for rows.Next() {
		var it stock.FoldItem
		if err := rows.Scan(&it.Kind, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan fold item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountLiveRefs cuenta líneas vivas que referencian el producto.
func (r *TransactionRepo) CountLiveRefs(ctx context.Context, productID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM transaction_items i
		JOIN transactions t ON t.id = i.transaction_id
		WHERE i.product_id = $1 AND t.deleted_at IS NULL`
	var n int
	if err := r.q.QueryRow(ctx, query, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count live refs: %w", err)
	}
	return n, nil
}
