package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-solidario/internal/application/dto"
	"github.com/jhoicas/almacen-solidario/internal/domain"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
	"github.com/jhoicas/almacen-solidario/internal/domain/repository"
)

// ReferenceUseCase CRUD de datos de referencia: categorías, sectores y
// proveedores. El ledger los consume solo para validar claves foráneas.
type ReferenceUseCase struct {
	categoryRepo repository.CategoryRepository
	sectorRepo   repository.SectorRepository
	supplierRepo repository.SupplierRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(
	categoryRepo repository.CategoryRepository,
	sectorRepo repository.SectorRepository,
	supplierRepo repository.SupplierRepository,
) *ReferenceUseCase {
	return &ReferenceUseCase{categoryRepo: categoryRepo, sectorRepo: sectorRepo, supplierRepo: supplierRepo}
}

// ── Categorías ────────────────────────────────────────────────────────────────

func (uc *ReferenceUseCase) CreateCategory(ctx context.Context, in dto.NameRequest) (*dto.NameResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("nombre requerido")
	}
	c := &entity.Category{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now()}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.NameResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
}

func (uc *ReferenceUseCase) UpdateCategory(ctx context.Context, id string, in dto.NameRequest) (*dto.NameResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("nombre requerido")
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.NameResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
}

func (uc *ReferenceUseCase) DeleteCategory(ctx context.Context, id string) error {
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(ctx, id)
}

func (uc *ReferenceUseCase) ListCategories(ctx context.Context) ([]dto.NameResponse, error) {
	items, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NameResponse, 0, len(items))
	for _, c := range items {
		out = append(out, dto.NameResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// ── Sectores ──────────────────────────────────────────────────────────────────

func (uc *ReferenceUseCase) CreateSector(ctx context.Context, in dto.NameRequest) (*dto.NameResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("nombre requerido")
	}
	s := &entity.Sector{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now()}
	if err := uc.sectorRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return &dto.NameResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}, nil
}

func (uc *ReferenceUseCase) UpdateSector(ctx context.Context, id string, in dto.NameRequest) (*dto.NameResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("nombre requerido")
	}
	s, err := uc.sectorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name = in.Name
	if err := uc.sectorRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return &dto.NameResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}, nil
}

func (uc *ReferenceUseCase) DeleteSector(ctx context.Context, id string) error {
	s, err := uc.sectorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.sectorRepo.Delete(ctx, id)
}

func (uc *ReferenceUseCase) ListSectors(ctx context.Context) ([]dto.NameResponse, error) {
	items, err := uc.sectorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NameResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.NameResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
	}
	return out, nil
}

// ── Proveedores ───────────────────────────────────────────────────────────────

func (uc *ReferenceUseCase) CreateSupplier(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("nombre requerido")
	}
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: time.Now(),
	}
	if err := uc.supplierRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *ReferenceUseCase) UpdateSupplier(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("nombre requerido")
	}
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name = in.Name
	s.Document = in.Document
	s.Phone = in.Phone
	s.Email = in.Email
	if err := uc.supplierRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *ReferenceUseCase) DeleteSupplier(ctx context.Context, id string) error {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Delete(ctx, id)
}

func (uc *ReferenceUseCase) ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	items, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(items))
	for i := range items {
		out = append(out, *toSupplierResponse(&items[i]))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Document:  s.Document,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
	}
}
