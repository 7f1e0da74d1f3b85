package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para contrapartes.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(teamID, id string) (*entity.Company, error)
	List(teamID string, limit, offset int) ([]*entity.Company, error)
}
