package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-solidario/internal/application/analytics"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/infrastructure/memory"
)

var today = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	uc    *analytics.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	uc := analytics.NewUseCaseWithClock(memory.NewAnalyticsRepository(store), func() time.Time { return today })
	return &fixture{store: store, uc: uc}
}

func (f *fixture) addProduct(t *testing.T, name string, current, minimum int64) string {
	t.Helper()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Code:         "C-" + name,
		Name:         name,
		Unit:         "kg",
		CurrentStock: current,
		MinimumStock: minimum,
	}
	require.NoError(t, memory.NewProductRepository(f.store).Create(context.Background(), p))
	return p.ID
}

func (f *fixture) addEntryWithValidity(t *testing.T, productID string, qty int64, validity time.Time) string {
	t.Helper()
	tx := &entity.Transaction{
		ID:           uuid.New().String(),
		Kind:         entity.KindEntry,
		Counterparty: "Banco de Alimentos",
		MovementDate: today,
		Items: []entity.LineItem{{
			ID:        uuid.New().String(),
			ProductID: productID,
			Quantity:  qty,
			Validity:  &validity,
		}},
		CreatedAt: today,
		UpdatedAt: today,
	}
	require.NoError(t, memory.NewTransactionRepository(f.store).Create(context.Background(), tx))
	return tx.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock crítico
// ──────────────────────────────────────────────────────────────────────────────

func TestCriticalStock_OrdenPorFaltante(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "Arroz", 2, 10)    // faltante 8
	f.addProduct(t, "Lentejas", 8, 10) // faltante 2
	f.addProduct(t, "Aceite", 0, 5)    // faltante 5
	f.addProduct(t, "Sal", 50, 10)     // sobre el mínimo: excluido
	f.addProduct(t, "Azúcar", 0, 0)    // mínimo 0: nunca alerta

	out, err := f.uc.CriticalStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Arroz", out[0].ProductName)
	assert.Equal(t, int64(8), out[0].Gap)
	assert.Equal(t, "Aceite", out[1].ProductName)
	assert.Equal(t, "Lentejas", out[2].ProductName)
}

func TestCriticalStock_EmpateDesempataPorNombre(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "Harina", 5, 10)
	f.addProduct(t, "Fideos", 5, 10)

	out, err := f.uc.CriticalStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Fideos", out[0].ProductName)
	assert.Equal(t, "Harina", out[1].ProductName)
}

func TestCriticalStock_EnElMinimoTambienAlerta(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "Arroz", 10, 10)

	out, err := f.uc.CriticalStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(0), out[0].Gap)
}

func TestCriticalStock_LimitePorDefecto(t *testing.T) {
	f := newFixture(t)
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for _, n := range names {
		f.addProduct(t, n, 0, 10)
	}

	out, err := f.uc.CriticalStock(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, out, 5)

	out, err = f.uc.CriticalStock(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Próximos a vencer
// ──────────────────────────────────────────────────────────────────────────────

func TestNearExpiration_VentanaYSeveridad(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 100, 0)
	f.addEntryWithValidity(t, arroz, 10, today.AddDate(0, 0, 10)) // critical
	f.addEntryWithValidity(t, arroz, 20, today.AddDate(0, 0, 40)) // warning
	f.addEntryWithValidity(t, arroz, 30, today.AddDate(0, 0, 90)) // fuera de ventana
	f.addEntryWithValidity(t, arroz, 5, today.AddDate(0, 0, -5))  // ya vencido

	out, err := f.uc.NearExpiration(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Más urgente primero: el vencido encabeza con días negativos.
	assert.Equal(t, -5, out[0].DaysRemaining)
	assert.Equal(t, "critical", out[0].Severity)
	assert.Equal(t, 10, out[1].DaysRemaining)
	assert.Equal(t, "critical", out[1].Severity)
	assert.Equal(t, 40, out[2].DaysRemaining)
	assert.Equal(t, "warning", out[2].Severity)
}

func TestNearExpiration_IgnoraBorradasYSinVencimiento(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 100, 0)
	deleted := f.addEntryWithValidity(t, arroz, 10, today.AddDate(0, 0, 10))
	require.NoError(t, memory.NewTransactionRepository(f.store).SoftDelete(context.Background(), deleted))

	// Entrada sin vencimiento: no participa de la vista.
	tx := &entity.Transaction{
		ID:           uuid.New().String(),
		Kind:         entity.KindEntry,
		Counterparty: "Banco de Alimentos",
		MovementDate: today,
		Items: []entity.LineItem{{
			ID:        uuid.New().String(),
			ProductID: arroz,
			Quantity:  10,
		}},
		CreatedAt: today,
		UpdatedAt: today,
	}
	require.NoError(t, memory.NewTransactionRepository(f.store).Create(context.Background(), tx))

	out, err := f.uc.NearExpiration(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNearExpiration_Limite(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 100, 0)
	for i := 1; i <= 8; i++ {
		f.addEntryWithValidity(t, arroz, 1, today.AddDate(0, 0, i))
	}

	out, err := f.uc.NearExpiration(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, out, 5, "tope por defecto")

	out, err = f.uc.NearExpiration(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].DaysRemaining)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary(t *testing.T) {
	f := newFixture(t)
	arroz := f.addProduct(t, "Arroz", 30, 50) // crítico
	f.addProduct(t, "Lentejas", 70, 10)
	f.addEntryWithValidity(t, arroz, 10, today.AddDate(0, 0, 10))
	f.addEntryWithValidity(t, arroz, 10, today.AddDate(0, 0, 90)) // fuera de ventana

	out, err := f.uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), out.TotalStock)
	assert.Equal(t, 2, out.ProductCount)
	assert.Equal(t, 1, out.CriticalCount)
	assert.Equal(t, 1, out.ExpiringCount)
}
