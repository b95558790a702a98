package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. CurrentStock no es
// asignable por el caller: nace en cero y solo lo muta el proyector.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID   string          `json:"category_id"`
	SectorID     string          `json:"sector_id"`
	Unit         string          `json:"unit"`
	MinimumStock int64           `json:"minimum_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest entrada para actualizar un producto (solo clasificación;
// nunca CurrentStock).
type UpdateProductRequest struct {
	Code         *string          `json:"code"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID   *string          `json:"category_id"`
	SectorID     *string          `json:"sector_id"`
	Unit         *string          `json:"unit"`
	MinimumStock *int64           `json:"minimum_stock"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id"`
	SectorID     string          `json:"sector_id"`
	Unit         string          `json:"unit"`
	MinimumStock int64           `json:"minimum_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int64           `json:"current_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RecomputeStockResponse resultado de la recomputación de stock desde el histórico.
type RecomputeStockResponse struct {
	ProductID     string `json:"product_id"`
	PreviousStock int64  `json:"previous_stock"`
	CurrentStock  int64  `json:"current_stock"`
	Corrected     bool   `json:"corrected"` // true si el contador incremental estaba desviado
}
