package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/application/usecase"
	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/infrastructure/memory"
)

func newProductFixture(t *testing.T) (*memory.Store, *usecase.ProductUseCase) {
	t.Helper()
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(store), memory.NewTxRunner(store))
	return store, uc
}

func TestProductCreate_NaceConStockCero(t *testing.T) {
	_, uc := newProductFixture(t)

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "ARZ-01",
		Name: "Arroz",
		Unit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.CurrentStock)
	assert.NotEmpty(t, out.ID)
}

func TestProductCreate_Validaciones(t *testing.T) {
	_, uc := newProductFixture(t)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "Arroz", MinimumStock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_ParcheDeCampos(t *testing.T) {
	_, uc := newProductFixture(t)
	created, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "ARZ-01", Name: "Arroz", Unit: "kg"})
	require.NoError(t, err)

	newName := "Arroz integral"
	newMin := int64(10)
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name:         &newName,
		MinimumStock: &newMin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Arroz integral", out.Name)
	assert.Equal(t, int64(10), out.MinimumStock)
	assert.Equal(t, "ARZ-01", out.Code, "los campos no enviados no cambian")
}

func TestProductUpdate_NoExiste(t *testing.T) {
	_, uc := newProductFixture(t)
	name := "X"
	_, err := uc.Update(context.Background(), uuid.New().String(), dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete_RechazadoConMovimientosVivos(t *testing.T) {
	store, uc := newProductFixture(t)
	created, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "ARZ-01", Name: "Arroz", Unit: "kg"})
	require.NoError(t, err)

	ledgerUC := ledger.NewUseCase(memory.NewTxRunner(store), memory.NewTransactionRepository(store))
	entryOut, err := ledgerUC.Create(context.Background(), entity.KindEntry, dto.TransactionRequest{
		Counterparty: "Banco de Alimentos",
		Items:        []dto.LineItemRequest{{ProductID: created.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Al borrar el movimiento, la referencia viva desaparece y el borrado procede.
	require.NoError(t, ledgerUC.Delete(context.Background(), entity.KindEntry, entryOut.ID))
	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err = uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_FiltroYPaginacion(t *testing.T) {
	_, uc := newProductFixture(t)
	for _, name := range []string{"Arroz", "Lentejas", "Aceite"} {
		_, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "C-" + name, Name: name, Unit: "kg"})
		require.NoError(t, err)
	}

	out, err := uc.List(context.Background(), "", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Page.Total)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "Aceite", out.Items[0].Name, "orden alfabético")

	found, err := uc.List(context.Background(), "lente", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Lentejas", found.Items[0].Name)
}
