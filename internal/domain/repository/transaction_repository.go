package repository

import (
	"context"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/stock"
)

// TransactionFilter criterios de listado del ledger.
type TransactionFilter struct {
	// Search filtra por coincidencia parcial en contraparte o número de nota.
	Search string
	Limit  int
	Offset int
}

// TransactionRepository almacenamiento del ledger de transacciones.
type TransactionRepository interface {
	// Create persiste la transacción con sus líneas.
	Create(ctx context.Context, t *entity.Transaction) error
	// Replace sustituye encabezado y líneas bajo el mismo id (edición = reemplazo total).
	Replace(ctx context.Context, t *entity.Transaction) error
	// SoftDelete marca la transacción como borrada (excluida de folds y listados).
	SoftDelete(ctx context.Context, id string) error
	// GetByID devuelve la transacción viva del tipo dado, con líneas y nombres
	// de producto resueltos, o nil si no existe.
	GetByID(ctx context.Context, kind entity.TransactionKind, id string) (*entity.Transaction, error)
	// List devuelve transacciones vivas del tipo dado, más recientes primero.
	List(ctx context.Context, kind entity.TransactionKind, f TransactionFilter) ([]entity.Transaction, int, error)

	// LiveItemsByProduct devuelve las líneas vivas que referencian el producto
	// (insumo del fold de recomputación).
	LiveItemsByProduct(ctx context.Context, productID string) ([]stock.FoldItem, error)
	// CountLiveRefs cuenta líneas vivas que referencian el producto (bloqueo de
	// borrado de productos).
	CountLiveRefs(ctx context.Context, productID string) (int, error)
}
