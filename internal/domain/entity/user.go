package entity

import "time"

// Roles de usuario. El registro emite RoleAdmin para el primer usuario;
// los demás roles se asignan por administración.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// User usuario autenticable del equipo.
type User struct {
	ID           string
	TeamID       string
	Email        string
	Name         string
	PasswordHash string // bcrypt
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
