package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/stock"
)

func TestDelta(t *testing.T) {
	assert.Equal(t, int64(7), stock.Delta(entity.KindEntry, 7))
	assert.Equal(t, int64(-7), stock.Delta(entity.KindExit, 7))
}

func TestNetDeltas_AgregaLineasRepetidas(t *testing.T) {
	tx := &entity.Transaction{
		Kind: entity.KindExit,
		Items: []entity.LineItem{
			{ProductID: "a", Quantity: 3},
			{ProductID: "b", Quantity: 5},
			{ProductID: "a", Quantity: 2},
		},
	}
	deltas := stock.NetDeltas(tx)
	assert.Equal(t, map[string]int64{"a": -5, "b": -5}, deltas)
}

func TestNegate(t *testing.T) {
	deltas := map[string]int64{"a": 5, "b": -3}
	assert.Equal(t, map[string]int64{"a": -5, "b": 3}, stock.Negate(deltas))
}

func TestMerge(t *testing.T) {
	// Reversa de una salida de 5 + aplicación de una salida de 8 = delta neto -3.
	old := map[string]int64{"a": 5}
	neu := map[string]int64{"a": -8, "b": 2}
	assert.Equal(t, map[string]int64{"a": -3, "b": 2}, stock.Merge(old, neu))
}

func TestSortedProductIDs(t *testing.T) {
	deltas := map[string]int64{"c": 1, "a": 1, "b": 1}
	assert.Equal(t, []string{"a", "b", "c"}, stock.SortedProductIDs(deltas))
}

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		items []stock.FoldItem
		want  int64
	}{
		{"sin lineas", nil, 0},
		{"solo entradas", []stock.FoldItem{
			{Kind: entity.KindEntry, Quantity: 10},
			{Kind: entity.KindEntry, Quantity: 5},
		}, 15},
		{"entradas y salidas", []stock.FoldItem{
			{Kind: entity.KindEntry, Quantity: 20},
			{Kind: entity.KindExit, Quantity: 15},
		}, 5},
		{"negativo tras reversa de entrada", []stock.FoldItem{
			{Kind: entity.KindExit, Quantity: 4},
		}, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stock.Fold(tt.items))
		})
	}
}
