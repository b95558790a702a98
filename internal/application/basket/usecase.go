// Package basket implementa las cestas: plantillas nombradas de productos y
// cantidades, y su donación como salida atómica a través del ledger.
package basket

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
	"github.com/jhoicas/almacen-solidario/internal/infrastructure/metrics"
)

// UseCase CRUD de cestas + donación. Las cestas son metadatos puros: ninguna
// operación de este caso de uso toca stock salvo Donate, que delega en el ledger.
type UseCase struct {
	basketRepo  repository.BasketRepository
	productRepo repository.ProductRepository
	ledgerUC    *ledger.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(basketRepo repository.BasketRepository, productRepo repository.ProductRepository, ledgerUC *ledger.UseCase) *UseCase {
	return &UseCase{basketRepo: basketRepo, productRepo: productRepo, ledgerUC: ledgerUC}
}

// Create valida y persiste una cesta nueva (versión 1).
func (uc *UseCase) Create(ctx context.Context, in dto.CreateBasketRequest) (*dto.BasketResponse, error) {
	items, err := uc.buildItems(ctx, in.Name, in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Basket{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Version:     1,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range b.Items {
		b.Items[i].BasketID = b.ID
	}
	if err := uc.basketRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, b), nil
}

// Update reemplaza la cesta con verificación de versión (concurrencia optimista):
// si otro caller editó en medio, devuelve conflicto y no escribe nada.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateBasketRequest) (*dto.BasketResponse, error) {
	current, err := uc.basketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.buildItems(ctx, in.Name, in.Items)
	if err != nil {
		return nil, err
	}
	b := &entity.Basket{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Version:     in.Version + 1,
		Items:       items,
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   time.Now(),
	}
	for i := range b.Items {
		b.Items[i].BasketID = id
	}
	if err := uc.basketRepo.Update(ctx, b, in.Version); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, b), nil
}

// Delete borra la cesta físicamente. No afecta donaciones ya registradas: las
// salidas del ledger son independientes de la plantilla que las originó.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	b, err := uc.basketRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	return uc.basketRepo.Delete(ctx, id)
}

// Get devuelve una cesta con nombres de producto resueltos.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.BasketResponse, error) {
	b, err := uc.basketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, b), nil
}

// List devuelve cestas paginadas.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.BasketListResponse, error) {
	page.DefaultPage()
	baskets, total, err := uc.basketRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.BasketListResponse{
		Items: make([]dto.BasketResponse, 0, len(baskets)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for i := range baskets {
		out.Items = append(out.Items, *uc.toResponse(ctx, &baskets[i]))
	}
	return out, nil
}

// Donate expande la cesta en una salida del ledger contra el beneficiario.
// La atomicidad es total: si algún producto no tiene stock suficiente, no se
// registra salida alguna ni cambia ningún contador (una cesta nunca se dona
// parcialmente).
func (uc *UseCase) Donate(ctx context.Context, basketID string, in dto.DonateBasketRequest) (*dto.TransactionResponse, error) {
	if in.Beneficiary == "" {
		return nil, domain.Validation("beneficiario requerido")
	}
	b, err := uc.basketRepo.GetByID(ctx, basketID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	req := dto.TransactionRequest{
		Counterparty: in.Beneficiary,
		Notes:        in.Notes,
		Items:        make([]dto.LineItemRequest, 0, len(b.Items)),
	}
	for _, item := range b.Items {
		// Precio unitario cero: la cesta es una plantilla de cantidades.
		req.Items = append(req.Items, dto.LineItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	out, err := uc.ledgerUC.CreateExitFromBasket(ctx, basketID, req)
	if err != nil {
		return nil, err
	}
	metrics.DonationsTotal.Inc()
	return out, nil
}

// buildItems valida nombre y posiciones, y verifica que los productos existan vivos.
func (uc *UseCase) buildItems(ctx context.Context, name string, in []dto.BasketItemRequest) ([]entity.BasketItem, error) {
	if name == "" {
		return nil, domain.Validation("nombre de cesta requerido")
	}
	if len(in) == 0 {
		return nil, domain.Validation("la cesta debe tener al menos una posición")
	}
	items := make([]entity.BasketItem, 0, len(in))
	for i, item := range in {
		if item.ProductID == "" {
			return nil, domain.Validation("posición %d: producto requerido", i+1)
		}
		if item.Quantity <= 0 {
			return nil, domain.Validation("posición %d: la cantidad debe ser mayor que cero", i+1)
		}
		p, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.Validation("posición %d: producto %s no existe o está borrado", i+1, item.ProductID)
		}
		items = append(items, entity.BasketItem{
			ID:        uuid.New().String(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Position:  i,
		})
	}
	return items, nil
}

// toResponse arma el DTO resolviendo nombres de producto (best-effort para
// productos borrados después de componer la cesta).
func (uc *UseCase) toResponse(ctx context.Context, b *entity.Basket) *dto.BasketResponse {
	out := &dto.BasketResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Version:     b.Version,
		Items:       make([]dto.BasketItemResponse, 0, len(b.Items)),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	for _, item := range b.Items {
		name := ""
		if p, err := uc.productRepo.GetByID(ctx, item.ProductID); err == nil && p != nil {
			name = p.Name
		}
		out.Items = append(out.Items, dto.BasketItemResponse{
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
		})
	}
	return out
}
