package memory

import (
	"context"

	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner emula la atomicidad de una transacción de BD con snapshot/restore:
// si el callback falla, el almacén vuelve exactamente al estado previo.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios sobre el almacén; restaura el snapshot ante error.
func (r *TxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.store.snapshot()
	if err := fn(NewTransactionRepository(r.store), NewProductRepository(r.store)); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
