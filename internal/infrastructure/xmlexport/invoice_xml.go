// Package xmlexport implementa la representación XML de una factura, con
// sabor UBL, para importación en sistemas contables.
package xmlexport

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/tu-usuario/logistica-api/internal/application/documents"
)

// Namespaces UBL 2.1 (subset: solo componentes básicos y agregados).
const (
	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

var _ documents.InvoiceXMLExporter = (*InvoiceExporter)(nil)

// InvoiceExporter implementa documents.InvoiceXMLExporter usando etree.
type InvoiceExporter struct{}

// NewInvoiceExporter construye el exportador.
func NewInvoiceExporter() *InvoiceExporter { return &InvoiceExporter{} }

// ExportInvoice serializa la factura como documento Invoice UBL.
func (e *InvoiceExporter) ExportInvoice(_ context.Context, doc documents.InvoiceDocument) ([]byte, error) {
	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := d.CreateElement("Invoice")
	root.CreateAttr("xmlns", nsInvoice)
	root.CreateAttr("xmlns:cac", nsCac)
	root.CreateAttr("xmlns:cbc", nsCbc)

	root.CreateElement("cbc:ID").SetText(doc.Number)
	root.CreateElement("cbc:IssueDate").SetText(doc.IssueDate.Format("2006-01-02"))
	root.CreateElement("cbc:DocumentStatusCode").SetText(doc.Status)

	party := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	party.CreateElement("cbc:Name").SetText(doc.CompanyName)
	if doc.CompanyTax != "" {
		party.CreateElement("cbc:CompanyID").SetText(doc.CompanyTax)
	}

	total := root.CreateElement("cac:LegalMonetaryTotal")
	total.CreateElement("cbc:PayableAmount").SetText(doc.TotalAmount.String())

	for i, l := range doc.Lines {
		line := root.CreateElement("cac:InvoiceLine")
		line.CreateElement("cbc:ID").SetText(fmt.Sprintf("%d", i+1))
		line.CreateElement("cbc:InvoicedQuantity").SetText(l.Quantity.String())
		line.CreateElement("cbc:LineExtensionAmount").SetText(l.TotalPrice.String())
		item := line.CreateElement("cac:Item")
		item.CreateElement("cbc:Description").SetText(l.Description)
		price := line.CreateElement("cac:Price")
		price.CreateElement("cbc:PriceAmount").SetText(l.UnitPrice.String())
	}

	d.Indent(2)
	out, err := d.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar factura: %w", err)
	}
	return out, nil
}
