package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
	"github.com/jhoicas/almacen-solidario/internal/domain/stock"
)

// StockProjector es el único escritor de current_stock. Aplica y revierte el
// efecto de una transacción sobre el catálogo dentro de la tx de BD del caller,
// bloqueando las filas de producto en orden ascendente de id.
//
// Solo la dirección apply de una salida verifica el piso de no-negatividad; la
// reversa nunca lo hace: revertir una entrada cuyos bienes ya salieron puede
// dejar stock negativo transitorio, que la re-aplicación del update equilibra.
type StockProjector struct{}

// Apply aplica el delta neto por producto de la transacción. Para salidas, si
// alguna línea dejaría el stock bajo cero, falla con InsufficientStockError y
// ninguna mutación sobrevive (la tx del caller hace rollback).
// Devuelve los productos bloqueados para que el caller resuelva nombres sin
// otra consulta.
func (StockProjector) Apply(
	ctx context.Context,
	productRepo repository.ProductRepository,
	t *entity.Transaction,
) (map[string]*entity.Product, error) {
	deltas := stock.NetDeltas(t)
	products, err := lockProducts(ctx, productRepo, deltas)
	if err != nil {
		return nil, err
	}

	// Verificación del piso antes de mutar: primera violación en orden de id.
	if t.Kind == entity.KindExit {
		for _, id := range stock.SortedProductIDs(deltas) {
			p := products[id]
			if p.CurrentStock+deltas[id] < 0 {
				return nil, &domain.InsufficientStockError{
					ProductID:   id,
					ProductName: p.Name,
					Requested:   -deltas[id],
					Available:   p.CurrentStock,
				}
			}
		}
	}

	if err := addDeltas(ctx, productRepo, products, deltas); err != nil {
		return nil, err
	}
	return products, nil
}

// Reverse deshace una aplicación previa (delta negado por producto), sin piso.
func (StockProjector) Reverse(
	ctx context.Context,
	productRepo repository.ProductRepository,
	t *entity.Transaction,
) error {
	deltas := stock.Negate(stock.NetDeltas(t))
	products, err := lockProducts(ctx, productRepo, deltas)
	if err != nil {
		return err
	}
	return addDeltas(ctx, productRepo, products, deltas)
}

// Recompute vuelve a derivar el stock de un producto plegando todas sus líneas
// vivas, y fija el contador en ese valor. Herramienta de auditoría/corrección;
// nunca se usa en el camino caliente.
func (StockProjector) Recompute(
	ctx context.Context,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	productID string,
) (previous, current int64, err error) {
	products, err := productRepo.GetManyForUpdate(ctx, []string{productID})
	if err != nil {
		return 0, 0, err
	}
	p, ok := products[productID]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}

	items, err := txRepo.LiveItemsByProduct(ctx, productID)
	if err != nil {
		return 0, 0, err
	}
	folded := stock.Fold(items)
	if err := productRepo.SetStock(ctx, productID, folded); err != nil {
		return 0, 0, err
	}
	return p.CurrentStock, folded, nil
}

// LockReplaceSet bloquea de una vez la unión de productos tocados por la
// transacción vieja y la nueva, en orden ascendente de id. Reverse y Apply
// re-adquieren bloqueos ya tomados por esta misma tx; sin la pre-toma, dos
// ediciones concurrentes con conjuntos solapados podrían adquirirlos en
// órdenes opuestos y terminar en deadlock.
func (StockProjector) LockReplaceSet(
	ctx context.Context,
	productRepo repository.ProductRepository,
	oldT, newT *entity.Transaction,
) error {
	deltas := stock.Merge(stock.NetDeltas(oldT), stock.NetDeltas(newT))
	_, err := lockProducts(ctx, productRepo, deltas)
	return err
}

// lockProducts bloquea (FOR UPDATE, orden ascendente de id) los productos
// tocados por los deltas y verifica que todos existan vivos.
func lockProducts(
	ctx context.Context,
	productRepo repository.ProductRepository,
	deltas map[string]int64,
) (map[string]*entity.Product, error) {
	ids := stock.SortedProductIDs(deltas)
	products, err := productRepo.GetManyForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
	}
	return products, nil
}

// addDeltas persiste los deltas y mantiene coherentes las copias en memoria.
func addDeltas(
	ctx context.Context,
	productRepo repository.ProductRepository,
	products map[string]*entity.Product,
	deltas map[string]int64,
) error {
	for _, id := range stock.SortedProductIDs(deltas) {
		if err := productRepo.AddStock(ctx, id, deltas[id]); err != nil {
			return fmt.Errorf("actualizar stock de %s: %w", id, err)
		}
		products[id].CurrentStock += deltas[id]
	}
	return nil
}
