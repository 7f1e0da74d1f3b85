package dto

import "github.com/shopspring/decimal"

// RecalculateRequest body para POST /api/pricing/recalculate: entradas crudas
// del formulario de línea. Si ItemID va presente y el precio vacío, el precio
// unitario se toma del precio de lista del artículo.
type RecalculateRequest struct {
	Qty       string `json:"qty"`
	UnitPrice string `json:"unit_price,omitempty"`
	ItemID    string `json:"item_id,omitempty" validate:"omitempty,uuid4"`
}

// RecalculateResponse valores parseados y cadenas de presentación.
type RecalculateResponse struct {
	Qty               decimal.Decimal `json:"qty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	UnitPriceDisplay  string          `json:"unit_price_display"`
	TotalPriceDisplay string          `json:"total_price_display"`
}
