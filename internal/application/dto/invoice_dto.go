package dto

import "github.com/shopspring/decimal"

// BuildInvoiceRequest body para POST /api/invoices: factura a una contraparte
// el conjunto de órdenes indicado (snapshot al momento de crear).
type BuildInvoiceRequest struct {
	CompanyID        string   `json:"company_id" validate:"required,uuid4"`
	DeliveryOrderIDs []string `json:"delivery_order_ids" validate:"required,min=1,dive,uuid4"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// InvoiceLineResponse línea facturada.
type InvoiceLineResponse struct {
	ID              string          `json:"id"`
	DeliveryOrderID string          `json:"delivery_order_id"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// InvoiceResponse factura con líneas y total.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CompanyID     string                `json:"company_id"`
	IssueDate     string                `json:"issue_date"`
	Status        string                `json:"status"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	Lines         []InvoiceLineResponse `json:"lines"`
}
