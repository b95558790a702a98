package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con
// lock_timeout acotado: una espera de bloqueo que excede el límite se traduce
// en domain.ErrLockTimeout (seguro de reintentar, nada quedó aplicado).
type TxRunner struct {
	pool          *pgxpool.Pool
	lockTimeoutMs int
}

// NewTxRunner construye el runner con el pool. lockTimeoutMs <= 0 desactiva el límite.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMs int) *TxRunner {
	return &TxRunner{pool: pool, lockTimeoutMs: lockTimeoutMs}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeoutMs > 0 {
		// SET LOCAL: el límite muere con la transacción.
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMs)); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	txRepo := NewTransactionRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(txRepo, productRepo); err != nil {
		return translateErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", translateErr(err))
	}
	return nil
}
