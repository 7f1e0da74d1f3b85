// Package masterdata agrupa los casos de uso de datos maestros: contrapartes,
// vehículos, conductores y artículos del catálogo. Son los blancos de las
// llaves foráneas de órdenes, remisiones y facturas.
package masterdata

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// CompanyUseCase CRUD mínimo de contrapartes.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create registra una contraparte del equipo.
func (uc *CompanyUseCase) Create(_ context.Context, tc domain.TenantContext, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	now := time.Now()
	c := &entity.Company{
		ID:        uuid.New().String(),
		TeamID:    tc.TeamID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// GetByID obtiene una contraparte del tenant.
func (uc *CompanyUseCase) GetByID(_ context.Context, tc domain.TenantContext, id string) (*dto.CompanyResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	c, err := uc.repo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(c), nil
}

// List lista contrapartes, paginadas.
func (uc *CompanyUseCase) List(_ context.Context, tc domain.TenantContext, page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.repo.List(tc.TeamID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		TaxID:   c.TaxID,
		Address: c.Address,
		Phone:   c.Phone,
		Email:   c.Email,
	}
}
