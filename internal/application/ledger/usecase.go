// Package ledger implementa el ledger de transacciones de stock y su proyector:
// registro validado de entradas y salidas, edición por reversa+re-aplicación y
// borrado lógico por reversa total.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
	"github.com/jhoicas/almacen-solidario/internal/infrastructure/metrics"
)

const dateLayout = "2006-01-02"

// UseCase orquesta el ledger: validación, persistencia y proyección de stock,
// todo dentro de una transacción de BD por operación.
type UseCase struct {
	txRunner  TxRunner
	txRepo    repository.TransactionRepository // lecturas fuera de tx
	projector StockProjector
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, txRepo repository.TransactionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, txRepo: txRepo}
}

// Create valida y persiste una transacción nueva y aplica su efecto al stock.
// Todo o nada: si alguna línea de una salida viola el piso, no queda ninguna
// mutación (ni transacción ni deltas parciales).
func (uc *UseCase) Create(ctx context.Context, kind entity.TransactionKind, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	return uc.create(ctx, kind, "", in)
}

// CreateExitFromBasket registra la salida sintetizada por una donación de cesta.
// Es la misma operación Create con la cesta de origen estampada: el piso de
// stock y la atomicidad viven en un solo lugar, no duplicados por variante.
func (uc *UseCase) CreateExitFromBasket(ctx context.Context, basketID string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	return uc.create(ctx, entity.KindExit, basketID, in)
}

func (uc *UseCase) create(ctx context.Context, kind entity.TransactionKind, basketID string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	t, err := uc.buildTransaction(kind, uuid.New().String(), in, time.Now())
	if err != nil {
		return nil, err
	}
	t.BasketID = basketID

	err = uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		if err := txRepo.Create(ctx, t); err != nil {
			return err
		}
		products, err := uc.projector.Apply(ctx, productRepo, t)
		if err != nil {
			return err
		}
		resolveNames(t, products)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStockRejections.Inc()
		}
		return nil, err
	}

	metrics.TransactionsApplied.WithLabelValues(string(kind)).Inc()
	return toResponse(t), nil
}

// Update reemplaza una transacción existente: revierte el efecto viejo, persiste
// el contenido nuevo bajo el mismo id y aplica el efecto nuevo, en una sola tx.
// Si la validación o el piso fallan, la reversa no queda aplicada.
func (uc *UseCase) Update(ctx context.Context, kind entity.TransactionKind, id string, in dto.TransactionRequest) (*dto.TransactionResponse, error) {
	newT, err := uc.buildTransaction(kind, id, in, time.Now())
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		old, err := txRepo.GetByID(ctx, kind, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if err := uc.projector.LockReplaceSet(ctx, productRepo, old, newT); err != nil {
			return err
		}
		if err := uc.projector.Reverse(ctx, productRepo, old); err != nil {
			return err
		}
		newT.CreatedAt = old.CreatedAt
		newT.BasketID = old.BasketID // procedencia de donación sobrevive al reemplazo
		if err := txRepo.Replace(ctx, newT); err != nil {
			return err
		}
		products, err := uc.projector.Apply(ctx, productRepo, newT)
		if err != nil {
			return err
		}
		resolveNames(newT, products)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStockRejections.Inc()
		}
		return nil, err
	}

	metrics.TransactionsReversed.WithLabelValues(string(kind)).Inc()
	metrics.TransactionsApplied.WithLabelValues(string(kind)).Inc()
	return toResponse(newT), nil
}

// Delete revierte el efecto de la transacción y la marca como borrada (lógico).
func (uc *UseCase) Delete(ctx context.Context, kind entity.TransactionKind, id string) error {
	err := uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		old, err := txRepo.GetByID(ctx, kind, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if err := uc.projector.Reverse(ctx, productRepo, old); err != nil {
			return err
		}
		return txRepo.SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.TransactionsReversed.WithLabelValues(string(kind)).Inc()
	return nil
}

// Get devuelve una transacción viva del tipo dado, con nombres resueltos.
func (uc *UseCase) Get(ctx context.Context, kind entity.TransactionKind, id string) (*dto.TransactionResponse, error) {
	t, err := uc.txRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(t), nil
}

// List devuelve transacciones vivas del tipo dado, más recientes primero.
func (uc *UseCase) List(ctx context.Context, kind entity.TransactionKind, search string, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	page.DefaultPage()
	items, total, err := uc.txRepo.List(ctx, kind, repository.TransactionFilter{
		Search: search,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.TransactionListResponse{
		Items: make([]dto.TransactionResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for i := range items {
		out.Items = append(out.Items, *toResponse(&items[i]))
	}
	return out, nil
}

// RecomputeStock repliega el histórico vivo de un producto y corrige el contador.
func (uc *UseCase) RecomputeStock(ctx context.Context, productID string) (*dto.RecomputeStockResponse, error) {
	var previous, current int64
	err := uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		var err error
		previous, current, err = uc.projector.Recompute(ctx, txRepo, productRepo, productID)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := "clean"
	if previous != current {
		result = "corrected"
	}
	metrics.StockRecomputes.WithLabelValues(result).Inc()
	return &dto.RecomputeStockResponse{
		ProductID:     productID,
		PreviousStock: previous,
		CurrentStock:  current,
		Corrected:     previous != current,
	}, nil
}

// buildTransaction valida el request y lo materializa como entidad con ids nuevos.
// Toda la validación ocurre aquí, antes de abrir la tx: nada se escribe si falla.
func (uc *UseCase) buildTransaction(kind entity.TransactionKind, id string, in dto.TransactionRequest, now time.Time) (*entity.Transaction, error) {
	if !kind.Valid() {
		return nil, domain.Validation("tipo de transacción inválido")
	}
	if in.Counterparty == "" {
		return nil, domain.Validation("contraparte requerida")
	}
	if len(in.Items) == 0 {
		return nil, domain.Validation("la transacción debe tener al menos una línea")
	}

	movementDate := now
	if in.MovementDate != "" {
		d, err := time.Parse(dateLayout, in.MovementDate)
		if err != nil {
			return nil, domain.Validation("fecha de movimiento inválida: %s", in.MovementDate)
		}
		movementDate = d
	}
	var emissionDate *time.Time
	if in.EmissionDate != "" {
		d, err := time.Parse(dateLayout, in.EmissionDate)
		if err != nil {
			return nil, domain.Validation("fecha de emisión inválida: %s", in.EmissionDate)
		}
		emissionDate = &d
	}

	t := &entity.Transaction{
		ID:           id,
		Kind:         kind,
		Counterparty: in.Counterparty,
		NoteNumber:   in.NoteNumber,
		EmissionDate: emissionDate,
		MovementDate: movementDate,
		Notes:        in.Notes,
		SectorID:     in.SectorID,
		Items:        make([]entity.LineItem, 0, len(in.Items)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return nil, domain.Validation("línea %d: producto requerido", i+1)
		}
		if item.Quantity <= 0 {
			return nil, domain.Validation("línea %d: la cantidad debe ser mayor que cero", i+1)
		}
		unitPrice := decimal.Zero
		if item.UnitPrice != nil {
			if item.UnitPrice.IsNegative() {
				return nil, domain.Validation("línea %d: el precio unitario no puede ser negativo", i+1)
			}
			unitPrice = *item.UnitPrice
		}
		var validity *time.Time
		if item.Validity != "" {
			d, err := time.Parse(dateLayout, item.Validity)
			if err != nil {
				return nil, domain.Validation("línea %d: fecha de vencimiento inválida: %s", i+1, item.Validity)
			}
			validity = &d
		}
		t.Items = append(t.Items, entity.LineItem{
			ID:            uuid.New().String(),
			TransactionID: t.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     unitPrice,
			Unit:          item.Unit,
			Validity:      validity,
			SectorID:      item.SectorID,
		})
	}
	return t, nil
}

// resolveNames copia los nombres de producto del conjunto bloqueado a las líneas.
func resolveNames(t *entity.Transaction, products map[string]*entity.Product) {
	for i := range t.Items {
		if p, ok := products[t.Items[i].ProductID]; ok {
			t.Items[i].ProductName = p.Name
		}
	}
}

func toResponse(t *entity.Transaction) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		ID:           t.ID,
		Kind:         string(t.Kind),
		Counterparty: t.Counterparty,
		NoteNumber:   t.NoteNumber,
		EmissionDate: t.EmissionDate,
		MovementDate: t.MovementDate,
		Notes:        t.Notes,
		SectorID:     t.SectorID,
		BasketID:     t.BasketID,
		Items:        make([]dto.LineItemResponse, 0, len(t.Items)),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	for _, item := range t.Items {
		var price *decimal.Decimal
		if !item.UnitPrice.IsZero() {
			p := item.UnitPrice
			price = &p
		}
		out.Items = append(out.Items, dto.LineItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   price,
			Unit:        item.Unit,
			Validity:    item.Validity,
			SectorID:    item.SectorID,
		})
	}
	return out
}
