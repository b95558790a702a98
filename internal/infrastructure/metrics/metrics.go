// Package metrics define los contadores Prometheus del motor de inventario.
// Se registran en el registry por defecto y se exponen en /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsApplied transacciones aplicadas al stock, por tipo (entry/exit).
	TransactionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_applied_total",
		Help: "Transacciones aplicadas al stock por tipo.",
	}, []string{"kind"})

	// TransactionsReversed reversas ejecutadas (ediciones y borrados), por tipo.
	TransactionsReversed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_reversed_total",
		Help: "Reversas de transacciones (ediciones y borrados) por tipo.",
	}, []string{"kind"})

	// InsufficientStockRejections salidas rechazadas por piso de stock.
	InsufficientStockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_insufficient_stock_rejections_total",
		Help: "Salidas rechazadas por stock insuficiente.",
	})

	// DonationsTotal donaciones de cesta registradas con éxito.
	DonationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_basket_donations_total",
		Help: "Donaciones de cesta convertidas en salida.",
	})

	// StockRecomputes recomputaciones de stock desde el histórico.
	StockRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_stock_recomputes_total",
		Help: "Recomputaciones de stock desde el histórico, por resultado.",
	}, []string{"result"}) // clean | corrected
)
