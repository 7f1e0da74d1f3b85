package entity

import "time"

// Vehicle vehículo asignable a una orden de entrega.
type Vehicle struct {
	ID          string
	TeamID      string
	PlateNumber string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
