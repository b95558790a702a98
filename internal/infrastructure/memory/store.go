// Package memory implementa los repositorios sobre un almacén en memoria.
// Respeta los mismos contratos que los adaptadores de PostgreSQL (borrado
// lógico, reemplazo total, verificación de versión) y un TxRunner con
// snapshot/restore, de modo que los casos de uso se ejercitan con la misma
// semántica de atomicidad sin base de datos.
package memory

import (
	"sync"

	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	products     map[string]*entity.Product
	transactions map[string]*entity.Transaction
	txOrder      []string // orden de inserción (los listados van del más reciente al más viejo)
	baskets      map[string]*entity.Basket
	basketOrder  []string
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]*entity.Product),
		transactions: make(map[string]*entity.Transaction),
		baskets:      make(map[string]*entity.Basket),
	}
}

// snapshot copia profunda del estado completo (para rollback del TxRunner).
type snapshot struct {
	products     map[string]*entity.Product
	transactions map[string]*entity.Transaction
	txOrder      []string
	baskets      map[string]*entity.Basket
	basketOrder  []string
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		products:     make(map[string]*entity.Product, len(s.products)),
		transactions: make(map[string]*entity.Transaction, len(s.transactions)),
		txOrder:      append([]string(nil), s.txOrder...),
		baskets:      make(map[string]*entity.Basket, len(s.baskets)),
		basketOrder:  append([]string(nil), s.basketOrder...),
	}
	for id, p := range s.products {
		snap.products[id] = copyProduct(p)
	}
	for id, t := range s.transactions {
		snap.transactions[id] = copyTransaction(t)
	}
	for id, b := range s.baskets {
		snap.baskets[id] = copyBasket(b)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.transactions = snap.transactions
	s.txOrder = snap.txOrder
	s.baskets = snap.baskets
	s.basketOrder = snap.basketOrder
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.DeletedAt != nil {
		d := *p.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}

func copyTransaction(t *entity.Transaction) *entity.Transaction {
	c := *t
	if t.EmissionDate != nil {
		d := *t.EmissionDate
		c.EmissionDate = &d
	}
	if t.DeletedAt != nil {
		d := *t.DeletedAt
		c.DeletedAt = &d
	}
	c.Items = make([]entity.LineItem, len(t.Items))
	for i, item := range t.Items {
		c.Items[i] = item
		if item.Validity != nil {
			v := *item.Validity
			c.Items[i].Validity = &v
		}
	}
	return &c
}

func copyBasket(b *entity.Basket) *entity.Basket {
	c := *b
	c.Items = append([]entity.BasketItem(nil), b.Items...)
	return &c
}
