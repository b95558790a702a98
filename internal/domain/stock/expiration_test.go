package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-solidario/internal/domain/stock"
)

var today = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name     string
		validity time.Time
		want     int
	}{
		{"mismo dia", time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC), 0},
		{"en diez dias", today.AddDate(0, 0, 10), 10},
		{"vencido hace cinco", today.AddDate(0, 0, -5), -5},
		// La hora del día no cambia el resultado: se compara a medianoche.
		{"manana temprano", time.Date(2025, 6, 16, 0, 30, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stock.DaysRemaining(tt.validity, today))
		})
	}
}

func TestWithinWindow(t *testing.T) {
	assert.True(t, stock.WithinWindow(-5), "vencido sigue dentro de la ventana")
	assert.True(t, stock.WithinWindow(0))
	assert.True(t, stock.WithinWindow(59))
	assert.False(t, stock.WithinWindow(60), "la ventana es estricta: < 60")
	assert.False(t, stock.WithinWindow(90))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, stock.SeverityCritical, stock.Classify(-5))
	assert.Equal(t, stock.SeverityCritical, stock.Classify(0))
	assert.Equal(t, stock.SeverityCritical, stock.Classify(10))
	assert.Equal(t, stock.SeverityCritical, stock.Classify(14))
	assert.Equal(t, stock.SeverityWarning, stock.Classify(15))
	assert.Equal(t, stock.SeverityWarning, stock.Classify(40))
	assert.Equal(t, stock.SeverityWarning, stock.Classify(59))
}
