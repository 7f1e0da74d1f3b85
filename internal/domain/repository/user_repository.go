package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(teamID, id string) (*entity.User, error)
}
