package dto

import "time"

// NameRequest entrada para crear/actualizar categorías y sectores.
type NameRequest struct {
	Name string `json:"name" validate:"required"`
}

// NameResponse salida de una categoría o sector.
type NameResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierRequest entrada para crear/actualizar un proveedor.
type SupplierRequest struct {
	Name     string `json:"name" validate:"required"`
	Document string `json:"document,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
