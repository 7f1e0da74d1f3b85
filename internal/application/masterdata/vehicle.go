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

// VehicleUseCase CRUD mínimo de vehículos.
type VehicleUseCase struct {
	repo repository.VehicleRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo}
}

// Create registra un vehículo del equipo.
func (uc *VehicleUseCase) Create(_ context.Context, tc domain.TenantContext, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	now := time.Now()
	v := &entity.Vehicle{
		ID:          uuid.New().String(),
		TeamID:      tc.TeamID,
		PlateNumber: in.PlateNumber,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(v); err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

// GetByID obtiene un vehículo del tenant.
func (uc *VehicleUseCase) GetByID(_ context.Context, tc domain.TenantContext, id string) (*dto.VehicleResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	v, err := uc.repo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVehicleResponse(v), nil
}

// List lista vehículos, paginados.
func (uc *VehicleUseCase) List(_ context.Context, tc domain.TenantContext, page dto.PageRequest) ([]*dto.VehicleResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.repo.List(tc.TeamID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Description: v.Description,
	}
}
