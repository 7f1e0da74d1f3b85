package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una remisión (nota de entrega).
const (
	NoteStatusDraft     = "draft"
	NoteStatusPrinted   = "printed"
	NoteStatusDelivered = "delivered"
	NoteStatusCancelled = "cancelled"
)

// DeliveryNote es la remisión: documento de prueba de entrega que registra
// cantidades realmente entregadas contra líneas de una o varias órdenes.
// Una remisión puede cumplir varias órdenes a la vez, y varias remisiones
// pueden cumplir una misma orden por cuotas.
type DeliveryNote struct {
	ID         string
	TeamID     string
	NoteNumber string
	IssueDate  time.Time
	Remarks    string
	Status     string
	Version    int // token de concurrencia optimista
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Lines      []DeliveryNoteLine
}

// DeliveryNoteLine línea de remisión. Referencia exactamente una línea de
// una orden (el par orden/línea debe pertenecerse). ActualQty puede exceder
// o quedar por debajo de lo planificado: la sobre/sub-entrega es intencional.
type DeliveryNoteLine struct {
	ID                  string
	NoteID              string
	DeliveryOrderID     string
	DeliveryOrderLineID string
	ActualQty           decimal.Decimal
	Position            int
}

// Editable indica si la remisión admite reemplazo de líneas.
func (n *DeliveryNote) Editable() bool {
	return n.Status == NoteStatusDraft || n.Status == NoteStatusPrinted
}

// ValidNoteStatus indica si s es un estado conocido de remisión.
func ValidNoteStatus(s string) bool {
	switch s {
	case NoteStatusDraft, NoteStatusPrinted, NoteStatusDelivered, NoteStatusCancelled:
		return true
	}
	return false
}

// CanTransitionNote valida un cambio de estado de remisión. Solo hacia
// adelante; delivered y cancelled son terminales.
func CanTransitionNote(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case NoteStatusDraft:
		return to == NoteStatusPrinted || to == NoteStatusDelivered || to == NoteStatusCancelled
	case NoteStatusPrinted:
		return to == NoteStatusDelivered || to == NoteStatusCancelled
	}
	return false
}
