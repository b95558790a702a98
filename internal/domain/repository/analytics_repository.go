package repository

import (
	"context"
	"time"
)

// CriticalStockRow producto en o por debajo de su mínimo (fila cruda, sin ordenar).
type CriticalStockRow struct {
	ProductID    string
	ProductName  string
	Unit         string
	CurrentStock int64
	MinimumStock int64
}

// ExpiringItemRow línea viva de entrada con fecha de vencimiento (fila cruda).
type ExpiringItemRow struct {
	TransactionID string
	Counterparty  string
	ProductID     string
	ProductName   string
	Quantity      int64
	Validity      time.Time
}

// AnalyticsRepository consultas de solo lectura para las vistas operativas.
// Nunca muta catálogo ni ledger.
type AnalyticsRepository interface {
	// ListBelowMinimum productos vivos con minimum_stock > 0 y current_stock <= minimum_stock.
	ListBelowMinimum(ctx context.Context) ([]CriticalStockRow, error)
	// ListExpiringItems líneas vivas de entradas con validity < before.
	ListExpiringItems(ctx context.Context, before time.Time) ([]ExpiringItemRow, error)
	// TotalStock suma de current_stock de productos vivos.
	TotalStock(ctx context.Context) (int64, error)
	// CountProducts productos vivos del catálogo.
	CountProducts(ctx context.Context) (int, error)
}
