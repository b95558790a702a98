package dto

import "time"

// CriticalStockDTO producto en o por debajo de su mínimo, ordenado por faltante.
type CriticalStockDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Unit         string `json:"unit,omitempty"`
	CurrentStock int64  `json:"current_stock"`
	MinimumStock int64  `json:"minimum_stock"`
	Gap          int64  `json:"gap"` // minimum - current; mayor faltante primero
}

// ExpiringItemDTO lote de entrada próximo a vencer (o ya vencido).
type ExpiringItemDTO struct {
	TransactionID string    `json:"transaction_id"`
	Counterparty  string    `json:"counterparty,omitempty"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int64     `json:"quantity"`
	Validity      time.Time `json:"validity"`
	DaysRemaining int       `json:"days_remaining"` // negativo = vencido
	Severity      string    `json:"severity"`       // critical | warning
}

// StockSummaryDTO tarjetas del dashboard operativo.
type StockSummaryDTO struct {
	TotalStock    int64 `json:"total_stock"`    // suma de current_stock de productos vivos
	ProductCount  int   `json:"product_count"`  // productos vivos del catálogo
	CriticalCount int   `json:"critical_count"` // productos en o bajo el mínimo
	ExpiringCount int   `json:"expiring_count"` // lotes dentro de la ventana de vencimiento
}
