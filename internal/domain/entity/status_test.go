package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/logistica-api/internal/domain/entity"
)

// Máquina de estados de la orden: el trinquete pending→in_progress lo hace
// el coordinador; completed y canceled son acciones explícitas del operador.
func TestCanTransitionOrder(t *testing.T) {
	// Avances válidos
	assert.True(t, entity.CanTransitionOrder(entity.OrderStatusPending, entity.OrderStatusInProgress, false))
	assert.True(t, entity.CanTransitionOrder(entity.OrderStatusInProgress, entity.OrderStatusCompleted, true))
	assert.True(t, entity.CanTransitionOrder(entity.OrderStatusPending, entity.OrderStatusCanceled, false))
	assert.True(t, entity.CanTransitionOrder(entity.OrderStatusCompleted, entity.OrderStatusCanceled, true))

	// Retroceso a pending: solo sin remisiones que referencien la orden
	assert.True(t, entity.CanTransitionOrder(entity.OrderStatusInProgress, entity.OrderStatusPending, false))
	assert.False(t, entity.CanTransitionOrder(entity.OrderStatusInProgress, entity.OrderStatusPending, true))
	assert.False(t, entity.CanTransitionOrder(entity.OrderStatusCompleted, entity.OrderStatusPending, true))

	// Saltos y repeticiones inválidos
	assert.False(t, entity.CanTransitionOrder(entity.OrderStatusPending, entity.OrderStatusCompleted, false))
	assert.False(t, entity.CanTransitionOrder(entity.OrderStatusCompleted, entity.OrderStatusInProgress, false))
	assert.False(t, entity.CanTransitionOrder(entity.OrderStatusCanceled, entity.OrderStatusCanceled, false))
}

func TestDeliveryOrder_Editable(t *testing.T) {
	o := &entity.DeliveryOrder{Status: entity.OrderStatusPending}
	assert.True(t, o.Editable())

	for _, s := range []string{entity.OrderStatusInProgress, entity.OrderStatusCompleted, entity.OrderStatusCanceled} {
		o.Status = s
		assert.False(t, o.Editable(), "estado %s no debe ser editable", s)
	}
}

func TestCanTransitionNote(t *testing.T) {
	assert.True(t, entity.CanTransitionNote(entity.NoteStatusDraft, entity.NoteStatusPrinted))
	assert.True(t, entity.CanTransitionNote(entity.NoteStatusPrinted, entity.NoteStatusDelivered))
	assert.True(t, entity.CanTransitionNote(entity.NoteStatusDraft, entity.NoteStatusCancelled))

	// delivered y cancelled son terminales
	assert.False(t, entity.CanTransitionNote(entity.NoteStatusDelivered, entity.NoteStatusDraft))
	assert.False(t, entity.CanTransitionNote(entity.NoteStatusCancelled, entity.NoteStatusPrinted))
	assert.False(t, entity.CanTransitionNote(entity.NoteStatusPrinted, entity.NoteStatusDraft))
}

func TestCanTransitionInvoice(t *testing.T) {
	assert.True(t, entity.CanTransitionInvoice(entity.InvoiceStatusDraft, entity.InvoiceStatusSent))
	assert.True(t, entity.CanTransitionInvoice(entity.InvoiceStatusSent, entity.InvoiceStatusPaid))
	assert.True(t, entity.CanTransitionInvoice(entity.InvoiceStatusSent, entity.InvoiceStatusOverdue))
	assert.True(t, entity.CanTransitionInvoice(entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid))

	assert.False(t, entity.CanTransitionInvoice(entity.InvoiceStatusPaid, entity.InvoiceStatusSent))
	assert.False(t, entity.CanTransitionInvoice(entity.InvoiceStatusDraft, entity.InvoiceStatusPaid))
	assert.False(t, entity.CanTransitionInvoice(entity.InvoiceStatusCancelled, entity.InvoiceStatusSent))
}
