package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice factura emitida a una contraparte por un conjunto de órdenes.
// Es un snapshot de lectura: TotalAmount y las líneas se copian al crearla
// y no cambian aunque después se editen las órdenes facturadas.
type Invoice struct {
	ID            string
	TeamID        string
	InvoiceNumber string // ej. "INV/2026/08-0004"
	Period        string // "YYYY/MM" del consecutivo
	Sequence      int    // consecutivo dentro del periodo
	CompanyID     string // contraparte facturada
	IssueDate     time.Time
	Status        string
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []InvoiceLine
}

// InvoiceLine línea facturable copiada de una línea de orden al crear la factura.
type InvoiceLine struct {
	ID                  string
	InvoiceID           string
	DeliveryOrderID     string
	DeliveryOrderLineID string
	Description         string
	Quantity            decimal.Decimal
	UnitPrice           decimal.Decimal
	TotalPrice          decimal.Decimal
	Position            int
}

// ValidInvoiceStatus indica si s es un estado conocido de factura.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanTransitionInvoice valida un cambio de estado de factura.
func CanTransitionInvoice(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case InvoiceStatusDraft:
		return to == InvoiceStatusSent || to == InvoiceStatusCancelled
	case InvoiceStatusSent:
		return to == InvoiceStatusPaid || to == InvoiceStatusOverdue || to == InvoiceStatusCancelled
	case InvoiceStatusOverdue:
		return to == InvoiceStatusPaid || to == InvoiceStatusCancelled
	}
	return false
}
