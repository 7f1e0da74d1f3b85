package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem artículo del catálogo del equipo. Price es el precio de lista:
// al seleccionar el artículo en una línea sin precio explícito, se toma de aquí.
type CatalogItem struct {
	ID        string
	TeamID    string
	Code      string
	Name      string
	Unit      string // unidad de medida (ej. "kg", "ton", "caja")
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
