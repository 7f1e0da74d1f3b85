package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/domain/pricing"
)

// Caso de referencia del formulario: qty "12" y precio "Rp 1.500" deben
// producir 12, 1500 y total exacto 18000.
func TestRecalculate_EntradaConMoneda(t *testing.T) {
	c := pricing.New("id", "Rp")
	res := c.Recalculate("12", "Rp 1.500")

	assert.True(t, res.Qty.Equal(decimal.NewFromInt(12)), "qty debe ser 12")
	assert.True(t, res.UnitPrice.Equal(decimal.NewFromInt(1500)), "precio debe ser 1500")
	assert.True(t, res.Total.Equal(decimal.NewFromInt(18000)), "total debe ser qty*precio exacto")
}

// Entradas vacías o sin dígitos normalizan a cero, nunca a error.
func TestParseAmount_EntradasDegeneradas(t *testing.T) {
	casos := []string{"", "   ", "abc", "Rp", "-", "..,,"}
	for _, raw := range casos {
		assert.True(t, pricing.ParseAmount(raw).IsZero(), "entrada %q debe normalizar a cero", raw)
	}
}

// El signo menos se descarta en la sanitización: no existen montos negativos.
func TestParseAmount_DescartaSigno(t *testing.T) {
	d := pricing.ParseAmount("-250")
	assert.True(t, d.Equal(decimal.NewFromInt(250)))
}

// Separadores de miles y texto intercalado no afectan el valor parseado.
func TestParseAmount_SeparadoresYTexto(t *testing.T) {
	assert.True(t, pricing.ParseAmount("1.500").Equal(decimal.NewFromInt(1500)))
	assert.True(t, pricing.ParseAmount("1,500").Equal(decimal.NewFromInt(1500)))
	assert.True(t, pricing.ParseAmount("Rp 2.500.000").Equal(decimal.NewFromInt(2500000)))
}

// Recalculate es determinista e idempotente: dos llamadas con las mismas
// entradas producen exactamente el mismo resultado.
func TestRecalculate_Idempotente(t *testing.T) {
	c := pricing.New("id", "Rp")
	a := c.Recalculate("37", "Rp 12.750")
	b := c.Recalculate("37", "Rp 12.750")

	assert.True(t, a.Qty.Equal(b.Qty))
	assert.True(t, a.Total.Equal(b.Total))
	assert.Equal(t, a.TotalDisplay, b.TotalDisplay)
}

// La aritmética es decimal exacta: sin deriva de punto flotante en sumas.
func TestLineTotal_SinDerivaDecimal(t *testing.T) {
	qty := decimal.NewFromInt(3)
	price := decimal.RequireFromString("333333.33")
	total := pricing.LineTotal(qty, price)
	require.True(t, total.Equal(decimal.RequireFromString("999999.99")))
}

// Presentación: agrupación de miles según locale con prefijo de moneda.
func TestFormatAmount_AgrupacionLocale(t *testing.T) {
	c := pricing.New("id", "Rp")
	assert.Equal(t, "Rp 18.000", c.FormatAmount(decimal.NewFromInt(18000)))
	assert.Equal(t, "Rp 5.900.000", c.FormatAmount(decimal.NewFromInt(5900000)))
	assert.Equal(t, "Rp 0", c.FormatAmount(decimal.Zero))
}

// Cambio de artículo: el precio de lista del catálogo entra por la misma cascada.
func TestRecalculateWithListPrice(t *testing.T) {
	c := pricing.New("id", "Rp")
	res := c.RecalculateWithListPrice("4", decimal.NewFromInt(475000))

	assert.True(t, res.UnitPrice.Equal(decimal.NewFromInt(475000)))
	assert.True(t, res.Total.Equal(decimal.NewFromInt(1900000)))
	assert.Equal(t, "Rp 1.900.000", res.TotalDisplay)
}
