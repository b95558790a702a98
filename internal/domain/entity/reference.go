package entity

import "time"

// Category clasificación de productos (alimentos, higiene, limpieza, ...).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Sector área interna que origina o recibe movimientos (cocina, bazar, ...).
type Sector struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Supplier proveedor registrado para las entradas por compra.
type Supplier struct {
	ID        string
	Name      string
	Document  string // CNPJ/NIT u otro documento
	Phone     string
	Email     string
	CreatedAt time.Time
}
