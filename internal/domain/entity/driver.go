package entity

import "time"

// Roles de conductor dentro de una orden.
const (
	DriverRoleMain      = "main"
	DriverRoleAssistant = "assistant"
)

// Driver conductor asignable a una orden de entrega (principal o ayudante).
type Driver struct {
	ID            string
	TeamID        string
	Name          string
	LicenseNumber string
	Phone         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
