package xmlexport

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/application/documents"
)

func TestExportInvoice(t *testing.T) {
	doc := documents.InvoiceDocument{
		Number:      "INV/2026/08-0004",
		IssueDate:   time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Status:      "sent",
		CompanyName: "Constructora Delta",
		CompanyTax:  "901234567-8",
		TotalAmount: decimal.NewFromInt(5_900_000),
		Lines: []documents.InvoiceDocumentLine{
			{Description: "Arena lavada", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(475000), TotalPrice: decimal.NewFromInt(1_900_000)},
			{Description: "Triturado 3/4", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(800000), TotalPrice: decimal.NewFromInt(4_000_000)},
		},
	}

	out, err := NewInvoiceExporter().ExportInvoice(context.Background(), doc)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(out))

	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, "INV/2026/08-0004", root.FindElement("cbc:ID").Text())
	assert.Equal(t, "2026-08-30", root.FindElement("cbc:IssueDate").Text())
	assert.Equal(t, "5900000", root.FindElement("cac:LegalMonetaryTotal/cbc:PayableAmount").Text())

	lines := root.FindElements("cac:InvoiceLine")
	require.Len(t, lines, 2)
	assert.Equal(t, "Arena lavada", lines[0].FindElement("cac:Item/cbc:Description").Text())
	assert.Equal(t, "475000", lines[0].FindElement("cac:Price/cbc:PriceAmount").Text())
	assert.Equal(t, "1900000", lines[0].FindElement("cbc:LineExtensionAmount").Text())
}
