package dto

import "github.com/shopspring/decimal"

// NoteItemRequest línea de remisión: referencia el par orden/línea y la
// cantidad realmente entregada (texto crudo del formulario).
type NoteItemRequest struct {
	DeliveryOrderID     string `json:"delivery_order_id" validate:"required,uuid4"`
	DeliveryOrderItemID string `json:"delivery_order_item_id" validate:"required,uuid4"`
	ActualQty           string `json:"actual_qty" validate:"required"`
}

// CreateNoteRequest body para POST /api/delivery-notes. Dispara la
// reconciliación: persiste las líneas y ajusta el estado de las órdenes tocadas.
type CreateNoteRequest struct {
	NoteNumber string            `json:"note_number" validate:"required"`
	IssueDate  string            `json:"issue_date" validate:"required,datetime=2006-01-02"`
	Remarks    string            `json:"remarks,omitempty"`
	Items      []NoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateNoteRequest body para PUT /api/delivery-notes/:id. El set de líneas
// se reenvía completo (reemplazo delete+insert). Version es el token de
// concurrencia optimista.
type UpdateNoteRequest struct {
	NoteNumber string            `json:"note_number" validate:"required"`
	IssueDate  string            `json:"issue_date" validate:"required,datetime=2006-01-02"`
	Remarks    string            `json:"remarks,omitempty"`
	Items      []NoteItemRequest `json:"items" validate:"required,min=1,dive"`
	Version    int               `json:"version" validate:"required,min=1"`
}

// UpdateNoteStatusRequest body para PATCH /api/delivery-notes/:id/status.
type UpdateNoteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// NoteLineResponse línea de remisión en respuestas.
type NoteLineResponse struct {
	ID                  string          `json:"id"`
	DeliveryOrderID     string          `json:"delivery_order_id"`
	DeliveryOrderItemID string          `json:"delivery_order_item_id"`
	ActualQty           decimal.Decimal `json:"actual_qty"`
}

// NoteResponse remisión con líneas.
type NoteResponse struct {
	ID         string             `json:"id"`
	NoteNumber string             `json:"note_number"`
	IssueDate  string             `json:"issue_date"`
	Remarks    string             `json:"remarks,omitempty"`
	Status     string             `json:"status"`
	Version    int                `json:"version"`
	Lines      []NoteLineResponse `json:"lines"`
}
