package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrLockTimeout       = errors.New("tiempo de espera de bloqueo agotado")
)

// InsufficientStockError detalla el primer producto que violaría el piso de stock
// al aplicar una salida. Envuelve ErrInsufficientStock para que errors.Is funcione.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int64 // cantidad solicitada por la transacción
	Available   int64 // stock disponible al momento de aplicar
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError describe una violación de validación antes de cualquier mutación.
// Envuelve ErrInvalidInput.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Validation construye un ValidationError con formato.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
