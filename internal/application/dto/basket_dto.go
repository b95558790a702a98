package dto

import "time"

// BasketItemRequest posición de cesta (producto + cantidad).
type BasketItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateBasketRequest entrada para crear una cesta.
type CreateBasketRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description,omitempty"`
	Items       []BasketItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateBasketRequest reemplazo de la cesta con verificación de versión.
// Version debe coincidir con la versión leída; si otro caller editó en medio,
// la operación falla con conflicto.
type UpdateBasketRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description,omitempty"`
	Version     int64               `json:"version"`
	Items       []BasketItemRequest `json:"items" validate:"required,min=1"`
}

// BasketItemResponse posición de cesta resuelta.
type BasketItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int64  `json:"quantity"`
}

// BasketResponse salida de una cesta.
type BasketResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Version     int64                `json:"version"`
	Items       []BasketItemResponse `json:"items"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// BasketListResponse lista paginada de cestas.
type BasketListResponse struct {
	Items []BasketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// DonateBasketRequest body de POST /api/baskets/:id/donate.
type DonateBasketRequest struct {
	Beneficiary string `json:"beneficiary" validate:"required"`
	Notes       string `json:"notes,omitempty"`
}
