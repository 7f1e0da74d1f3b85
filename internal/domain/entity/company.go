package entity

import "time"

// Company es una contraparte comercial del equipo: actúa como proveedor
// (origen de la carga) o como cliente (destino/facturado) en las órdenes.
type Company struct {
	ID        string
	TeamID    string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
