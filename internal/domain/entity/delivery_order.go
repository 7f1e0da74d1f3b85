package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de entrega.
// pending --[remisión referencia alguna línea]--> in_progress (trinquete, 4.3)
// in_progress --[acción explícita de operador]--> completed
// cualquier estado --[acción explícita de operador]--> canceled
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCanceled   = "canceled"
)

// DeliveryOrder es el envío planificado: líneas con precio, contrapartes,
// vehículo y conductores. El estado es derivado una vez inicia el cumplimiento:
// solo el coordinador de reconciliación lo escribe (pending→in_progress) y el
// operador lo cierra con una acción explícita.
type DeliveryOrder struct {
	ID                string
	TeamID            string
	OrderNumber       string
	SupplierID        string
	CustomerID        string
	VehicleID         string
	MainDriverID      string
	AssistantDriverID string // opcional, vacío si no hay ayudante
	OrderDate         time.Time
	DeliveryDate      time.Time
	DeliveryAddress   string
	Status            string
	Version           int // token de concurrencia optimista
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Lines             []DeliveryOrderLine
}

// DeliveryOrderLine línea planificada de la orden. TotalPrice siempre se
// recalcula como Quantity × UnitPrice; nunca lo autoriza el cliente.
type DeliveryOrderLine struct {
	ID         string
	OrderID    string
	ItemID     string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Position   int
}

// Editable indica si la orden admite edición de cabecera y líneas.
// Solo mientras esté en pending; después el coordinador es el único escritor.
func (o *DeliveryOrder) Editable() bool {
	return o.Status == OrderStatusPending
}

// ValidOrderStatus indica si s es un estado conocido de orden.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// CanTransitionOrder valida una transición de estado por acción de operador.
// La regresión in_progress/completed → pending solo es válida si ninguna
// línea de remisión referencia la orden (hasNoteRefs false).
func CanTransitionOrder(from, to string, hasNoteRefs bool) bool {
	if from == to {
		return false
	}
	switch to {
	case OrderStatusCanceled:
		return from != OrderStatusCanceled
	case OrderStatusCompleted:
		return from == OrderStatusInProgress
	case OrderStatusInProgress:
		return from == OrderStatusPending
	case OrderStatusPending:
		return (from == OrderStatusInProgress || from == OrderStatusCompleted) && !hasNoteRefs
	}
	return false
}
