// Package analytics contiene las vistas derivadas de solo lectura que alimentan
// las alertas operativas: stock crítico, lotes próximos a vencer y resumen.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
	"github.com/jhoicas/almacen-solidario/internal/domain/stock"
)

const defaultTopN = 5 // tamaño observado de los widgets de alerta

// Clock permite fijar "hoy" en tests; producción usa time.Now.
type Clock func() time.Time

// UseCase vistas derivadas del estado actual. Nunca muta catálogo ni ledger:
// son funciones puras del estado, recomputadas bajo demanda.
type UseCase struct {
	repo repository.AnalyticsRepository
	now  Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AnalyticsRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// NewUseCaseWithClock variante para tests con fecha fija.
func NewUseCaseWithClock(repo repository.AnalyticsRepository, now Clock) *UseCase {
	return &UseCase{repo: repo, now: now}
}

// CriticalStock devuelve los productos en o por debajo de su mínimo, ordenados
// por faltante descendente (mayor faltante primero) y nombre ascendente como
// desempate. Productos con mínimo 0 quedan excluidos siempre.
func (uc *UseCase) CriticalStock(ctx context.Context, limit int) ([]dto.CriticalStockDTO, error) {
	if limit <= 0 {
		limit = defaultTopN
	}
	rows, err := uc.repo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock crítico: %w", err)
	}

	out := make([]dto.CriticalStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CriticalStockDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Unit:         r.Unit,
			CurrentStock: r.CurrentStock,
			MinimumStock: r.MinimumStock,
			Gap:          r.MinimumStock - r.CurrentStock,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Gap != out[j].Gap {
			return out[i].Gap > out[j].Gap
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// NearExpiration devuelve los lotes de entrada con menos de 60 días restantes,
// más urgentes primero (los ya vencidos, con días negativos, encabezan la lista).
func (uc *UseCase) NearExpiration(ctx context.Context, limit int) ([]dto.ExpiringItemDTO, error) {
	if limit <= 0 {
		limit = defaultTopN
	}
	today := uc.now()
	before := today.AddDate(0, 0, stock.ExpirationWindowDays)
	rows, err := uc.repo.ListExpiringItems(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("próximos a vencer: %w", err)
	}

	out := make([]dto.ExpiringItemDTO, 0, len(rows))
	for _, r := range rows {
		days := stock.DaysRemaining(r.Validity, today)
		if !stock.WithinWindow(days) {
			continue
		}
		out = append(out, dto.ExpiringItemDTO{
			TransactionID: r.TransactionID,
			Counterparty:  r.Counterparty,
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			Quantity:      r.Quantity,
			Validity:      r.Validity,
			DaysRemaining: days,
			Severity:      string(stock.Classify(days)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysRemaining != out[j].DaysRemaining {
			return out[i].DaysRemaining < out[j].DaysRemaining
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Summary arma las tarjetas del dashboard con tres consultas en paralelo,
// más el conteo de vencimientos derivado de NearExpiration.
func (uc *UseCase) Summary(ctx context.Context) (*dto.StockSummaryDTO, error) {
	type totalResult struct {
		total int64
		err   error
	}
	type countResult struct {
		count int
		err   error
	}

	totalCh := make(chan totalResult, 1)
	productsCh := make(chan countResult, 1)
	criticalCh := make(chan countResult, 1)

	go func() {
		total, err := uc.repo.TotalStock(ctx)
		totalCh <- totalResult{total, err}
	}()
	go func() {
		n, err := uc.repo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.repo.ListBelowMinimum(ctx)
		criticalCh <- countResult{len(rows), err}
	}()

	total := <-totalCh
	products := <-productsCh
	critical := <-criticalCh

	if total.err != nil {
		return nil, fmt.Errorf("resumen: stock total: %w", total.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("resumen: conteo de productos: %w", products.err)
	}
	if critical.err != nil {
		return nil, fmt.Errorf("resumen: stock crítico: %w", critical.err)
	}

	expiring, err := uc.NearExpiration(ctx, 1<<30)
	if err != nil {
		return nil, err
	}

	return &dto.StockSummaryDTO{
		TotalStock:    total.total,
		ProductCount:  products.count,
		CriticalCount: critical.count,
		ExpiringCount: len(expiring),
	}, nil
}
