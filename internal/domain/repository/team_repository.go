package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// TeamRepository define el puerto de persistencia para equipos (tenants).
type TeamRepository interface {
	Create(team *entity.Team) error
	GetByID(id string) (*entity.Team, error)
}
