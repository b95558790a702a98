package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de una transacción (producto + cantidad).
type LineItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Unit      string           `json:"unit,omitempty"`
	Validity  string           `json:"validity,omitempty"` // YYYY-MM-DD, vencimiento del lote
	SectorID  string           `json:"sector_id,omitempty"`
}

// TransactionRequest body para crear o reemplazar una entrada o salida.
// Las fechas van en formato YYYY-MM-DD.
type TransactionRequest struct {
	Counterparty string            `json:"counterparty" validate:"required"` // proveedor o solicitante/beneficiario
	NoteNumber   string            `json:"note_number,omitempty"`
	EmissionDate string            `json:"emission_date,omitempty"`
	MovementDate string            `json:"movement_date,omitempty"` // vacío = hoy
	Notes        string            `json:"notes,omitempty"`
	SectorID     string            `json:"sector_id,omitempty"`
	Items        []LineItemRequest `json:"items" validate:"required,min=1"`
}

// LineItemResponse línea resuelta para presentación.
type LineItemResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	Validity    *time.Time       `json:"validity,omitempty"`
	SectorID    string           `json:"sector_id,omitempty"`
}

// TransactionResponse salida de una transacción con sus líneas.
type TransactionResponse struct {
	ID           string             `json:"id"`
	Kind         string             `json:"kind"`
	Counterparty string             `json:"counterparty"`
	NoteNumber   string             `json:"note_number,omitempty"`
	EmissionDate *time.Time         `json:"emission_date,omitempty"`
	MovementDate time.Time          `json:"movement_date"`
	Notes        string             `json:"notes,omitempty"`
	SectorID     string             `json:"sector_id,omitempty"`
	BasketID     string             `json:"basket_id,omitempty"`
	Items        []LineItemResponse `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// TransactionListResponse lista paginada de transacciones (más recientes primero).
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
