package masterdata

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// CatalogItemUseCase CRUD mínimo de artículos del catálogo.
type CatalogItemUseCase struct {
	repo repository.CatalogItemRepository
}

// NewCatalogItemUseCase construye el caso de uso.
func NewCatalogItemUseCase(repo repository.CatalogItemRepository) *CatalogItemUseCase {
	return &CatalogItemUseCase{repo: repo}
}

// Create registra un artículo. El precio de lista no puede ser negativo.
func (uc *CatalogItemUseCase) Create(_ context.Context, tc domain.TenantContext, in dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	it := &entity.CatalogItem{
		ID:        uuid.New().String(),
		TeamID:    tc.TeamID,
		Code:      in.Code,
		Name:      in.Name,
		Unit:      in.Unit,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(it); err != nil {
		return nil, err
	}
	return toCatalogItemResponse(it), nil
}

// GetByID obtiene un artículo del tenant.
func (uc *CatalogItemUseCase) GetByID(_ context.Context, tc domain.TenantContext, id string) (*dto.CatalogItemResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	it, err := uc.repo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	return toCatalogItemResponse(it), nil
}

// List lista artículos, paginados.
func (uc *CatalogItemUseCase) List(_ context.Context, tc domain.TenantContext, page dto.PageRequest) ([]*dto.CatalogItemResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.repo.List(tc.TeamID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CatalogItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, toCatalogItemResponse(it))
	}
	return out, nil
}

func toCatalogItemResponse(it *entity.CatalogItem) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{
		ID:    it.ID,
		Code:  it.Code,
		Name:  it.Name,
		Unit:  it.Unit,
		Price: it.Price,
	}
}
