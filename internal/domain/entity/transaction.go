package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tipo de transacción del ledger.
type TransactionKind string

const (
	KindEntry TransactionKind = "entry" // entrada: compra o donación recibida
	KindExit  TransactionKind = "exit"  // salida: consumo interno, pérdida o donación entregada
)

// Valid indica si el tipo es uno de los soportados.
func (k TransactionKind) Valid() bool { return k == KindEntry || k == KindExit }

// Sign devuelve el signo del efecto sobre stock: +1 entrada, -1 salida.
func (k TransactionKind) Sign() int64 {
	if k == KindExit {
		return -1
	}
	return 1
}

// Transaction es una transacción del ledger (entrada o salida) con sus ítems.
// Se crea completa, se edita solo por reemplazo total y se borra de forma lógica;
// nunca se actualiza parcialmente.
type Transaction struct {
	ID           string
	Kind         TransactionKind
	Counterparty string     // proveedor (entrada) o solicitante/beneficiario (salida)
	NoteNumber   string     // número de nota/documento opcional
	EmissionDate *time.Time // fecha de emisión del documento
	MovementDate time.Time  // fecha de recepción o de salida
	Notes        string
	SectorID     string
	BasketID     string // cesta de origen cuando la salida nace de una donación
	Items        []LineItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Deleted indica si la transacción fue borrada lógicamente (excluida del fold).
func (t *Transaction) Deleted() bool { return t.DeletedAt != nil }

// LineItem es una línea de transacción: un producto con su cantidad y datos opcionales.
type LineItem struct {
	ID            string
	TransactionID string
	ProductID     string
	ProductName   string // resuelto para presentación; no se persiste como verdad
	Quantity      int64  // siempre > 0; el signo lo aporta el Kind del padre
	UnitPrice     decimal.Decimal
	Unit          string
	Validity      *time.Time // fecha de vencimiento del lote (entradas)
	SectorID      string
}
