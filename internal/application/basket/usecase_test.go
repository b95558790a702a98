package basket_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-solidario/internal/application/basket"
	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/infrastructure/memory"
)

type fixture struct {
	store    *memory.Store
	uc       *basket.UseCase
	ledgerUC *ledger.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ledgerUC := ledger.NewUseCase(memory.NewTxRunner(store), memory.NewTransactionRepository(store))
	uc := basket.NewUseCase(memory.NewBasketRepository(store), memory.NewProductRepository(store), ledgerUC)
	return &fixture{store: store, uc: uc, ledgerUC: ledgerUC}
}

func (f *fixture) addProduct(t *testing.T, name string, initialStock int64) string {
	t.Helper()
	p := &entity.Product{
		ID:   uuid.New().String(),
		Code: "C-" + name,
		Name: name,
		Unit: "kg",
	}
	require.NoError(t, memory.NewProductRepository(f.store).Create(context.Background(), p))
	if initialStock > 0 {
		_, err := f.ledgerUC.Create(context.Background(), entity.KindEntry, dto.TransactionRequest{
			Counterparty: "Banco de Alimentos",
			Items:        []dto.LineItemRequest{{ProductID: p.ID, Quantity: initialStock}},
		})
		require.NoError(t, err)
	}
	return p.ID
}

func (f *fixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	p, err := memory.NewProductRepository(f.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func TestCreate_VersionInicial(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 0)

	out, err := f.uc.Create(context.Background(), dto.CreateBasketRequest{
		Name:  "Cesta básica",
		Items: []dto.BasketItemRequest{{ProductID: arroz, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Version)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Arroz", out.Items[0].ProductName)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 0)

	tests := []struct {
		name string
		req  dto.CreateBasketRequest
	}{
		{"sin nombre", dto.CreateBasketRequest{
			Items: []dto.BasketItemRequest{{ProductID: arroz, Quantity: 1}},
		}},
		{"sin posiciones", dto.CreateBasketRequest{Name: "X"}},
		{"cantidad cero", dto.CreateBasketRequest{
			Name:  "X",
			Items: []dto.BasketItemRequest{{ProductID: arroz, Quantity: 0}},
		}},
		{"producto inexistente", dto.CreateBasketRequest{
			Name:  "X",
			Items: []dto.BasketItemRequest{{ProductID: uuid.New().String(), Quantity: 1}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdate_IncrementaVersion(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 0)
	created, err := f.uc.Create(context.Background(), dto.CreateBasketRequest{
		Name:  "Cesta básica",
		Items: []dto.BasketItemRequest{{ProductID: arroz, Quantity: 3}},
	})
	require.NoError(t, err)

	out, err := f.uc.Update(context.Background(), created.ID, dto.UpdateBasketRequest{
		Name:    "Cesta básica ampliada",
		Version: 1,
		Items:   []dto.BasketItemRequest{{ProductID: arroz, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Version)
	assert.Equal(t, "Cesta básica ampliada", out.Name)
}

func TestUpdate_VersionDesactualizada(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 0)
	created, err := f.uc.Create(context.Background(), dto.CreateBasketRequest{
		Name:  "Cesta básica",
		Items: []dto.BasketItemRequest{{ProductID: arroz, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), created.ID, dto.UpdateBasketRequest{
		Name:    "Primera edición",
		Version: 1,
		Items:   []dto.BasketItemRequest{{ProductID: arroz, Quantity: 4}},
	})
	require.NoError(t, err)

	// Segundo editor con la versión vieja: conflicto, nada se escribe.
	_, err = f.uc.Update(context.Background(), created.ID, dto.UpdateBasketRequest{
		Name:    "Edición tardía",
		Version: 1,
		Items:   []dto.BasketItemRequest{{ProductID: arroz, Quantity: 9}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primera edición", got.Name)
	assert.Equal(t, int64(2), got.Version)
}

func TestDelete_NoExiste(t *testing.T) {
	f := newFixture(t)
	err := f.uc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Donación
// ──────────────────────────────────────────────────────────────────────────────

func TestDonate_GeneraSalidaConProcedencia(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 10)
	lentejas := f.addProduct(t, "Lentejas", 10)
	created, err := f.uc.Create(context.Background(), dto.CreateBasketRequest{
		Name: "Cesta básica",
		Items: []dto.BasketItemRequest{
			{ProductID: arroz, Quantity: 3},
			{ProductID: lentejas, Quantity: 5},
		},
	})
	require.NoError(t, err)

	out, err := f.uc.Donate(context.Background(), created.ID, dto.DonateBasketRequest{
		Beneficiary: "Familia Pérez",
	})
	require.NoError(t, err)

	assert.Equal(t, "exit", out.Kind)
	assert.Equal(t, "Familia Pérez", out.Counterparty)
	assert.Equal(t, created.ID, out.BasketID, "la salida queda marcada con la cesta de origen")
	require.Len(t, out.Items, 2)
	assert.Nil(t, out.Items[0].UnitPrice, "las donaciones salen a precio cero")

	assert.Equal(t, int64(7), f.stockOf(t, arroz))
	assert.Equal(t, int64(5), f.stockOf(t, lentejas))
}

func TestDonate_AtomicaAnteStockInsuficiente(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 10)
	lentejas := f.addProduct(t, "Lentejas", 2)
	created, err := f.uc.Create(context.Background(), dto.CreateBasketRequest{
		Name: "Cesta básica",
		Items: []dto.BasketItemRequest{
			{ProductID: arroz, Quantity: 3},
			{ProductID: lentejas, Quantity: 5},
		},
	})
	require.NoError(t, err)

	// Lentejas no alcanza: ni el arroz se descuenta ni queda salida registrada.
	_, err = f.uc.Donate(context.Background(), created.ID, dto.DonateBasketRequest{
		Beneficiary: "Familia Pérez",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), f.stockOf(t, arroz))
	assert.Equal(t, int64(2), f.stockOf(t, lentejas))

	exits, err := f.ledgerUC.List(context.Background(), entity.KindExit, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, exits.Page.Total)
}

func TestDonate_BeneficiarioRequerido(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 10)
	created, err := f.uc.Create(context.Background(), dto.CreateBasketRequest{
		Name:  "Cesta básica",
		Items: []dto.BasketItemRequest{{ProductID: arroz, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.uc.Donate(context.Background(), created.ID, dto.DonateBasketRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDonate_CestaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Donate(context.Background(), uuid.New().String(), dto.DonateBasketRequest{
		Beneficiary: "Familia Pérez",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDonate_BorrarCestaNoAfectaDonacionesPrevias(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 10)
	created, err := f.uc.Create(context.Background(), dto.CreateBasketRequest{
		Name:  "Cesta básica",
		Items: []dto.BasketItemRequest{{ProductID: arroz, Quantity: 3}},
	})
	require.NoError(t, err)
	donated, err := f.uc.Donate(context.Background(), created.ID, dto.DonateBasketRequest{
		Beneficiary: "Familia Pérez",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))

	got, err := f.ledgerUC.Get(context.Background(), entity.KindExit, donated.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.BasketID)
	assert.Equal(t, int64(7), f.stockOf(t, arroz))
}
