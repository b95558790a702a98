package ledger

import (
	"context"

	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor: o todas las
// mutaciones del callback quedan (Commit), o ninguna (Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}
