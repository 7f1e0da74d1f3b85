package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// CatalogItemRepository define el puerto de persistencia para artículos del catálogo.
type CatalogItemRepository interface {
	Create(item *entity.CatalogItem) error
	GetByID(teamID, id string) (*entity.CatalogItem, error)
	List(teamID string, limit, offset int) ([]*entity.CatalogItem, error)
}
