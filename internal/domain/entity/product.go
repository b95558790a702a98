package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén solidario.
// CurrentStock es el valor autoritativo derivado del ledger: solo lo muta el
// proyector de stock (nunca los callers del catálogo).
type Product struct {
	ID           string
	Code         string // código interno opcional
	Name         string
	CategoryID   string
	SectorID     string
	Unit         string // unidad de medida (kg, und, lt, ...)
	MinimumStock int64  // umbral de stock crítico; 0 = sin alerta
	UnitPrice    decimal.Decimal
	CurrentStock int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // borrado lógico: preserva integridad del ledger
}

// Deleted indica si el producto está borrado lógicamente.
func (p *Product) Deleted() bool { return p.DeletedAt != nil }

// StockGap devuelve el faltante respecto al mínimo (minimum - current).
// Solo tiene sentido cuando MinimumStock > 0.
func (p *Product) StockGap() int64 { return p.MinimumStock - p.CurrentStock }
