package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// DriverRepository define el puerto de persistencia para conductores.
type DriverRepository interface {
	Create(driver *entity.Driver) error
	GetByID(teamID, id string) (*entity.Driver, error)
	List(teamID string, limit, offset int) ([]*entity.Driver, error)
}
