package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para vehículos.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(teamID, id string) (*entity.Vehicle, error)
	List(teamID string, limit, offset int) ([]*entity.Vehicle, error)
}
