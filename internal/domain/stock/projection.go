// Package stock contiene la aritmética pura del proyector de stock
// (servicios de dominio sin dependencias de infraestructura).
package stock

import (
	"sort"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
)

// Delta devuelve el efecto con signo de una línea: +cantidad para entradas,
// -cantidad para salidas.
func Delta(kind entity.TransactionKind, quantity int64) int64 {
	return kind.Sign() * quantity
}

// NetDeltas agrega las líneas de una transacción en un delta neto por producto.
// Una transacción puede repetir un producto en varias líneas; el proyector
// bloquea y muta cada fila una sola vez con la suma.
func NetDeltas(t *entity.Transaction) map[string]int64 {
	deltas := make(map[string]int64, len(t.Items))
	for _, item := range t.Items {
		deltas[item.ProductID] += Delta(t.Kind, item.Quantity)
	}
	return deltas
}

// Negate invierte los deltas (para revertir una aplicación previa).
func Negate(deltas map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(deltas))
	for id, d := range deltas {
		out[id] = -d
	}
	return out
}

// Merge suma dos mapas de deltas (reversa del estado viejo + aplicación del nuevo).
func Merge(a, b map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(a)+len(b))
	for id, d := range a {
		out[id] += d
	}
	for id, d := range b {
		out[id] += d
	}
	return out
}

// SortedProductIDs devuelve los IDs de producto en orden ascendente.
// Bloquear filas siempre en este orden evita deadlocks entre operaciones
// concurrentes que tocan conjuntos de productos solapados.
func SortedProductIDs(deltas map[string]int64) []string {
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Fold reduce una secuencia de líneas vivas al stock resultante de un producto.
// Es la definición del invariante: CurrentStock == Fold(líneas vivas).
func Fold(items []FoldItem) int64 {
	var total int64
	for _, it := range items {
		total += Delta(it.Kind, it.Quantity)
	}
	return total
}

// FoldItem es la proyección mínima de una línea viva para recomputar stock.
type FoldItem struct {
	Kind     entity.TransactionKind
	Quantity int64
}
