package entity

import "time"

// Basket es una cesta: composición nombrada de productos y cantidades que se
// dona como unidad. Es una plantilla; no afecta stock hasta que se dona.
type Basket struct {
	ID          string
	Name        string
	Description string
	Version     int64 // concurrencia optimista (last-write-wins con verificación)
	Items       []BasketItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BasketItem es una posición de la cesta, independiente de cualquier transacción.
type BasketItem struct {
	ID        string
	BasketID  string
	ProductID string
	Quantity  int64 // siempre > 0
	Position  int   // orden dentro de la cesta
}
