package dto

import "github.com/shopspring/decimal"

// OrderHeaderRequest cabecera de la orden en create/update.
type OrderHeaderRequest struct {
	OrderNumber       string `json:"order_number" validate:"required"`
	SupplierID        string `json:"supplier_id" validate:"required,uuid4"`
	CustomerID        string `json:"customer_id" validate:"required,uuid4"`
	VehicleID         string `json:"vehicle_id" validate:"required,uuid4"`
	MainDriverID      string `json:"main_driver_id" validate:"required,uuid4"`
	AssistantDriverID string `json:"assistant_driver_id,omitempty" validate:"omitempty,uuid4"`
	OrderDate         string `json:"order_date" validate:"required,datetime=2006-01-02"`
	DeliveryDate      string `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	DeliveryAddress   string `json:"delivery_address" validate:"required"`
}

// OrderItemRequest línea planificada. LoadQty y LoadPerPrice llegan como el
// texto crudo del formulario; la calculadora los sanitiza y recalcula el total.
// Si LoadPerPrice va vacío se toma el precio de lista del artículo.
type OrderItemRequest struct {
	ItemID       string `json:"item_id" validate:"required,uuid4"`
	LoadQty      string `json:"load_qty" validate:"required"`
	LoadPerPrice string `json:"load_per_price,omitempty"`
}

// CreateOrderRequest body para POST /api/delivery-orders.
type CreateOrderRequest struct {
	Order OrderHeaderRequest `json:"order" validate:"required"`
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest body para PUT /api/delivery-orders/:id. El set de líneas
// se reenvía completo en cada update (reemplazo, no diff). Version es el
// token de concurrencia optimista leído en el GET previo.
type UpdateOrderRequest struct {
	Order   OrderHeaderRequest `json:"order" validate:"required"`
	Items   []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Version int                `json:"version" validate:"required,min=1"`
}

// UpdateOrderStatusRequest body para PATCH /api/delivery-orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderLineResponse línea en respuestas.
type OrderLineResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderResponse orden con líneas.
type OrderResponse struct {
	ID                string              `json:"id"`
	OrderNumber       string              `json:"order_number"`
	SupplierID        string              `json:"supplier_id"`
	CustomerID        string              `json:"customer_id"`
	VehicleID         string              `json:"vehicle_id"`
	MainDriverID      string              `json:"main_driver_id"`
	AssistantDriverID string              `json:"assistant_driver_id,omitempty"`
	OrderDate         string              `json:"order_date"`
	DeliveryDate      string              `json:"delivery_date"`
	DeliveryAddress   string              `json:"delivery_address"`
	Status            string              `json:"status"`
	Version           int                 `json:"version"`
	Lines             []OrderLineResponse `json:"lines"`
}
