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

// DriverUseCase CRUD mínimo de conductores.
type DriverUseCase struct {
	repo repository.DriverRepository
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(repo repository.DriverRepository) *DriverUseCase {
	return &DriverUseCase{repo: repo}
}

// Create registra un conductor del equipo.
func (uc *DriverUseCase) Create(_ context.Context, tc domain.TenantContext, in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	now := time.Now()
	d := &entity.Driver{
		ID:            uuid.New().String(),
		TeamID:        tc.TeamID,
		Name:          in.Name,
		LicenseNumber: in.LicenseNumber,
		Phone:         in.Phone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(d); err != nil {
		return nil, err
	}
	return toDriverResponse(d), nil
}

// GetByID obtiene un conductor del tenant.
func (uc *DriverUseCase) GetByID(_ context.Context, tc domain.TenantContext, id string) (*dto.DriverResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	d, err := uc.repo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDriverResponse(d), nil
}

// List lista conductores, paginados.
func (uc *DriverUseCase) List(_ context.Context, tc domain.TenantContext, page dto.PageRequest) ([]*dto.DriverResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.repo.List(tc.TeamID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DriverResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDriverResponse(d))
	}
	return out, nil
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	return &dto.DriverResponse{
		ID:            d.ID,
		Name:          d.Name,
		LicenseNumber: d.LicenseNumber,
		Phone:         d.Phone,
	}
}
