// Package usecase contiene los casos de uso CRUD del catálogo y de los datos
// de referencia (categorías, sectores, proveedores).
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo. CurrentStock nunca es asignable por el
// caller: nace en cero y solo lo muta el proyector del ledger.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	txRunner    ledger.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, txRunner ledger.TxRunner) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, txRunner: txRunner}
}

// Create da de alta un producto con stock cero.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("nombre de producto requerido")
	}
	if in.MinimumStock < 0 {
		return nil, domain.Validation("el stock mínimo no puede ser negativo")
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.Validation("el precio unitario no puede ser negativo")
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		SectorID:     in.SectorID,
		Unit:         in.Unit,
		MinimumStock: in.MinimumStock,
		UnitPrice:    in.UnitPrice,
		CurrentStock: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update modifica solo clasificación y parámetros; el stock queda intacto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		p.Code = *in.Code
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.Validation("nombre de producto requerido")
		}
		p.Name = *in.Name
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.SectorID != nil {
		p.SectorID = *in.SectorID
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.Validation("el stock mínimo no puede ser negativo")
		}
		p.MinimumStock = *in.MinimumStock
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.Validation("el precio unitario no puede ser negativo")
		}
		p.UnitPrice = *in.UnitPrice
	}
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete borra lógicamente el producto. Mientras alguna línea viva del ledger
// lo referencie, el borrado se rechaza con conflicto: un insumo vivo del fold
// nunca puede quedar huérfano. El conteo de referencias y el borrado corren en
// una sola tx con la fila de producto bloqueada; un registro concurrente no
// puede colar una línea viva entre el chequeo y el borrado.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		products, err := productRepo.GetManyForUpdate(ctx, []string{id})
		if err != nil {
			return err
		}
		if _, ok := products[id]; !ok {
			return domain.ErrNotFound
		}
		refs, err := txRepo.CountLiveRefs(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrConflict
		}
		return productRepo.SoftDelete(ctx, id)
	})
}

// GetByID devuelve un producto vivo.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List devuelve productos vivos paginados, con filtro por nombre/código.
func (uc *ProductUseCase) List(ctx context.Context, filter string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, total, err := uc.productRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for i := range products {
		out.Items = append(out.Items, *toProductResponse(&products[i]))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		SectorID:     p.SectorID,
		Unit:         p.Unit,
		MinimumStock: p.MinimumStock,
		UnitPrice:    p.UnitPrice,
		CurrentStock: p.CurrentStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
