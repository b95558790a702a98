package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	uc    *ledger.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	uc := ledger.NewUseCase(memory.NewTxRunner(store), memory.NewTransactionRepository(store))
	return &fixture{store: store, uc: uc}
}

func (f *fixture) addProduct(t *testing.T, name string) string {
	t.Helper()
	p := &entity.Product{
		ID:   uuid.New().String(),
		Code: "C-" + name,
		Name: name,
		Unit: "kg",
	}
	require.NoError(t, memory.NewProductRepository(f.store).Create(context.Background(), p))
	return p.ID
}

func (f *fixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	p, err := memory.NewProductRepository(f.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func entry(productID string, qty int64) dto.TransactionRequest {
	return dto.TransactionRequest{
		Counterparty: "Banco de Alimentos",
		Items:        []dto.LineItemRequest{{ProductID: productID, Quantity: qty}},
	}
}

func exit(productID string, qty int64) dto.TransactionRequest {
	return dto.TransactionRequest{
		Counterparty: "Comedor Norte",
		Items:        []dto.LineItemRequest{{ProductID: productID, Quantity: qty}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_EntradaSumaStock(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")

	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)

	assert.Equal(t, "entry", out.Kind)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Arroz", out.Items[0].ProductName)
	assert.Equal(t, int64(20), f.stockOf(t, arroz))
}

func TestCreate_SalidaRestaStock(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	_, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), entity.KindExit, exit(arroz, 15))
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.stockOf(t, arroz))
}

func TestCreate_SalidaRechazadaPorPiso(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	_, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), entity.KindExit, exit(arroz, 15))
	require.NoError(t, err)

	// Quedan 5; pedir 10 viola el piso y no deja rastro.
	_, err = f.uc.Create(context.Background(), entity.KindExit, exit(arroz, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var serr *domain.InsufficientStockError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, int64(10), serr.Requested)
	assert.Equal(t, int64(5), serr.Available)

	assert.Equal(t, int64(5), f.stockOf(t, arroz))
	list, err := f.uc.List(context.Background(), entity.KindExit, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total, "la salida rechazada no se persiste")
}

func TestCreate_SalidaMultilinea_TodoONada(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	lentejas := f.addProduct(t, "Lentejas")
	_, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 10))
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), entity.KindEntry, entry(lentejas, 2))
	require.NoError(t, err)

	// La línea de lentejas falla: ninguna de las dos debe aplicarse.
	_, err = f.uc.Create(context.Background(), entity.KindExit, dto.TransactionRequest{
		Counterparty: "Comedor Norte",
		Items: []dto.LineItemRequest{
			{ProductID: arroz, Quantity: 3},
			{ProductID: lentejas, Quantity: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), f.stockOf(t, arroz))
	assert.Equal(t, int64(2), f.stockOf(t, lentejas))
}

func TestCreate_LineasRepetidasSeAgregan(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")

	_, err := f.uc.Create(context.Background(), entity.KindEntry, dto.TransactionRequest{
		Counterparty: "Banco de Alimentos",
		Items: []dto.LineItemRequest{
			{ProductID: arroz, Quantity: 3},
			{ProductID: arroz, Quantity: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.stockOf(t, arroz))
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")

	tests := []struct {
		name string
		req  dto.TransactionRequest
	}{
		{"sin contraparte", dto.TransactionRequest{
			Items: []dto.LineItemRequest{{ProductID: arroz, Quantity: 1}},
		}},
		{"sin lineas", dto.TransactionRequest{Counterparty: "X"}},
		{"cantidad cero", dto.TransactionRequest{
			Counterparty: "X",
			Items:        []dto.LineItemRequest{{ProductID: arroz, Quantity: 0}},
		}},
		{"cantidad negativa", dto.TransactionRequest{
			Counterparty: "X",
			Items:        []dto.LineItemRequest{{ProductID: arroz, Quantity: -3}},
		}},
		{"fecha invalida", dto.TransactionRequest{
			Counterparty: "X",
			MovementDate: "15/06/2025",
			Items:        []dto.LineItemRequest{{ProductID: arroz, Quantity: 1}},
		}},
		{"vencimiento invalido", dto.TransactionRequest{
			Counterparty: "X",
			Items:        []dto.LineItemRequest{{ProductID: arroz, Quantity: 1, Validity: "pronto"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), entity.KindEntry, tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, int64(0), f.stockOf(t, arroz), "ninguna validación fallida muta stock")
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New().String()
	_, err := f.uc.Create(context.Background(), entity.KindEntry, entry(missing, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound, "referenciar un producto inexistente es not-found, no validación")
	assert.Contains(t, err.Error(), missing, "el error identifica qué producto falta")

	list, lerr := f.uc.List(context.Background(), entity.KindEntry, "", dto.PageRequest{})
	require.NoError(t, lerr)
	assert.Equal(t, 0, list.Page.Total, "el rollback descarta también la transacción")
}

func TestCreate_FechaEmisionOpcional(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")

	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 5))
	require.NoError(t, err)
	assert.Nil(t, out.EmissionDate, "sin fecha de emisión el campo queda vacío")

	got, err := f.uc.Get(context.Background(), entity.KindEntry, out.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EmissionDate, "la fecha ausente sobrevive la persistencia")

	withDate := entry(arroz, 3)
	withDate.EmissionDate = "2025-06-10"
	out, err = f.uc.Create(context.Background(), entity.KindEntry, withDate)
	require.NoError(t, err)
	require.NotNil(t, out.EmissionDate)
	assert.Equal(t, "2025-06-10", out.EmissionDate.Format("2006-01-02"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ReversaYReaplicacion(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)

	// 20 -> 8: el stock queda como si la entrada siempre hubiera sido de 8.
	_, err = f.uc.Update(context.Background(), entity.KindEntry, out.ID, entry(arroz, 8))
	require.NoError(t, err)
	assert.Equal(t, int64(8), f.stockOf(t, arroz))
}

func TestUpdate_CambiaElConjuntoDeProductos(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	lentejas := f.addProduct(t, "Lentejas")
	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 5))
	require.NoError(t, err)

	// La edición toca la unión de ambos contenidos: el producto que sale del
	// movimiento vuelve a cero y el que entra recibe su delta completo.
	_, err = f.uc.Update(context.Background(), entity.KindEntry, out.ID, entry(lentejas, 7))
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.stockOf(t, arroz))
	assert.Equal(t, int64(7), f.stockOf(t, lentejas))
}

func TestUpdate_ProductoNuevoInexistente(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 5))
	require.NoError(t, err)

	// El bloqueo conjunto valida el contenido nuevo antes de revertir el viejo:
	// nada queda a medio aplicar.
	_, err = f.uc.Update(context.Background(), entity.KindEntry, out.ID, entry(uuid.New().String(), 3))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(5), f.stockOf(t, arroz), "la reversa no sobrevive al rechazo")
}

func TestUpdate_MismoContenidoEsIdentidad(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), entity.KindEntry, out.ID, entry(arroz, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(20), f.stockOf(t, arroz))
}

func TestUpdate_EntradaPuedeDejarStockNegativo(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), entity.KindExit, exit(arroz, 15))
	require.NoError(t, err)

	// Reducir la entrada a 10 cuando ya salieron 15: la dirección apply de una
	// entrada no verifica piso, el contador queda en -5 y refleja el histórico.
	_, err = f.uc.Update(context.Background(), entity.KindEntry, out.ID, entry(arroz, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(-5), f.stockOf(t, arroz))
}

func TestUpdate_SalidaAmpliadaRespetaPiso(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	_, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 10))
	require.NoError(t, err)
	out, err := f.uc.Create(context.Background(), entity.KindExit, exit(arroz, 6))
	require.NoError(t, err)

	// Ampliar la salida a 12 excede el histórico total (10): rechazado, y la
	// reversa intermedia no queda aplicada.
	_, err = f.uc.Update(context.Background(), entity.KindExit, out.ID, exit(arroz, 12))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(4), f.stockOf(t, arroz))

	got, err := f.uc.Get(context.Background(), entity.KindExit, out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Items[0].Quantity, "la transacción conserva su contenido original")
}

func TestUpdate_NoExiste(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	_, err := f.uc.Update(context.Background(), entity.KindEntry, uuid.New().String(), entry(arroz, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_TipoEquivocadoNoEncuentra(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 5))
	require.NoError(t, err)

	// Una entrada no es visible desde el espacio de ids de salidas.
	_, err = f.uc.Update(context.Background(), entity.KindExit, out.ID, exit(arroz, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RevierteEfectoCompleto(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)
	exitOut, err := f.uc.Create(context.Background(), entity.KindExit, exit(arroz, 15))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), entity.KindExit, exitOut.ID))
	assert.Equal(t, int64(20), f.stockOf(t, arroz), "borrar la salida devuelve lo retirado")

	require.NoError(t, f.uc.Delete(context.Background(), entity.KindEntry, out.ID))
	assert.Equal(t, int64(0), f.stockOf(t, arroz))

	_, err = f.uc.Get(context.Background(), entity.KindEntry, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "la transacción borrada deja de ser visible")
}

func TestDelete_NoExiste(t *testing.T) {
	f := newFixture(t)
	err := f.uc.Delete(context.Background(), entity.KindEntry, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recompute: el fold del histórico vivo es la verdad
// ──────────────────────────────────────────────────────────────────────────────

func TestRecomputeStock_ContadorLimpio(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	_, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), entity.KindExit, exit(arroz, 15))
	require.NoError(t, err)

	out, err := f.uc.RecomputeStock(context.Background(), arroz)
	require.NoError(t, err)
	assert.False(t, out.Corrected)
	assert.Equal(t, int64(5), out.PreviousStock)
	assert.Equal(t, int64(5), out.CurrentStock)
}

func TestRecomputeStock_CorrigeDesviacion(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	_, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)

	// Desviar el contador a mano simula una corrupción externa.
	require.NoError(t, memory.NewProductRepository(f.store).SetStock(context.Background(), arroz, 99))

	out, err := f.uc.RecomputeStock(context.Background(), arroz)
	require.NoError(t, err)
	assert.True(t, out.Corrected)
	assert.Equal(t, int64(99), out.PreviousStock)
	assert.Equal(t, int64(20), out.CurrentStock)
	assert.Equal(t, int64(20), f.stockOf(t, arroz))
}

func TestRecomputeStock_IgnoraTransaccionesBorradas(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	out, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 7))
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(context.Background(), entity.KindEntry, out.ID))

	res, err := f.uc.RecomputeStock(context.Background(), arroz)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.CurrentStock)
	assert.False(t, res.Corrected)
}

func TestRecomputeStock_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RecomputeStock(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorTipoYBusqueda(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	_, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 20))
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), entity.KindExit, exit(arroz, 5))
	require.NoError(t, err)

	entries, err := f.uc.List(context.Background(), entity.KindEntry, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, entries.Page.Total)

	found, err := f.uc.List(context.Background(), entity.KindExit, "comedor", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, found.Page.Total)

	none, err := f.uc.List(context.Background(), entity.KindExit, "no-existe", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Page.Total)
}

func TestList_MasRecientesPrimero(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz")
	first, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 1))
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), entity.KindEntry, entry(arroz, 2))
	require.NoError(t, err)

	list, err := f.uc.List(context.Background(), entity.KindEntry, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.ID, list.Items[0].ID)
	assert.Equal(t, first.ID, list.Items[1].ID)
}
