// Package pricing implementa la calculadora de cantidades y precios de las
// líneas de orden (servicio de dominio puro, sin I/O).
//
// El flujo es el del formulario de la orden: el usuario teclea cantidad o
// precio como texto libre ("12", "Rp 1.500", "1,500"), se sanitiza a un
// decimal no negativo, se recalcula el total de la línea y se producen las
// cadenas de presentación con agrupación de dígitos según el locale.
package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseAmount sanitiza una entrada cruda de cantidad o precio: descarta todo
// carácter que no sea dígito y parsea el resto como entero no negativo.
// Entrada vacía o sin dígitos normaliza a cero; nunca retorna error.
func ParseAmount(raw string) decimal.Decimal {
	digits := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(string(digits))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LineTotal calcula el total de una línea: cantidad × precio unitario.
func LineTotal(qty, unitPrice decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitPrice)
}

// Result resultado de un recálculo de línea.
type Result struct {
	Qty              decimal.Decimal
	UnitPrice        decimal.Decimal
	Total            decimal.Decimal
	UnitPriceDisplay string
	TotalDisplay     string
}

// Calculator produce recálculos con presentación según locale y símbolo de
// moneda configurados. Es inmutable y seguro para uso concurrente.
type Calculator struct {
	printer *message.Printer
	symbol  string
}

// New construye la calculadora. locale es una etiqueta BCP 47 (ej. "id",
// "es-CO"); si no parsea se usa indonesio, que agrupa miles con punto.
func New(locale, currencySymbol string) *Calculator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Indonesian
	}
	return &Calculator{
		printer: message.NewPrinter(tag),
		symbol:  currencySymbol,
	}
}

// Recalculate sanitiza las entradas crudas y re-deriva el total y las
// cadenas de presentación. Idempotente: mismas entradas, mismo resultado.
func (c *Calculator) Recalculate(qtyRaw, unitPriceRaw string) Result {
	qty := ParseAmount(qtyRaw)
	price := ParseAmount(unitPriceRaw)
	return c.build(qty, price)
}

// RecalculateWithListPrice corre la misma cascada cuando cambia el artículo
// seleccionado: el precio unitario se toma del precio de lista del catálogo.
func (c *Calculator) RecalculateWithListPrice(qtyRaw string, listPrice decimal.Decimal) Result {
	qty := ParseAmount(qtyRaw)
	if listPrice.IsNegative() {
		listPrice = decimal.Zero
	}
	return c.build(qty, listPrice)
}

// FormatAmount produce la cadena de presentación de un monto: símbolo de
// moneda + parte entera con agrupación de dígitos del locale (ej. "Rp 18.000").
func (c *Calculator) FormatAmount(d decimal.Decimal) string {
	grouped := c.printer.Sprintf("%d", d.IntPart())
	if c.symbol == "" {
		return grouped
	}
	return c.symbol + " " + grouped
}

func (c *Calculator) build(qty, price decimal.Decimal) Result {
	return Result{
		Qty:              qty,
		UnitPrice:        price,
		Total:            LineTotal(qty, price),
		UnitPriceDisplay: c.FormatAmount(price),
		TotalDisplay:     c.FormatAmount(LineTotal(qty, price)),
	}
}
