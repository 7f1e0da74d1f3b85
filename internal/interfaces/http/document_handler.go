package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/logistica-api/internal/application/documents"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentHandler expone la renderización de documentos imprimibles.
type DocumentHandler struct {
	uc *documents.UseCase
}

// NewDocumentHandler construye el handler inyectando el caso de uso.
func NewDocumentHandler(uc *documents.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// NotePDF godoc
// @Summary      Renderizar PDF de una remisión (sella draft como printed)
// @Tags         documents
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la remisión"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/delivery-notes/{id}/pdf [get]
func (h *DocumentHandler) NotePDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.RenderNotePDF(c.Context(), tenantFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="remision-%s.pdf"`, id))
	return c.Send(data)
}

// OrderPDF godoc
// @Summary      Renderizar PDF de una orden de entrega
// @Tags         documents
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/delivery-orders/{id}/pdf [get]
func (h *DocumentHandler) OrderPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.RenderOrderPDF(c.Context(), tenantFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="orden-%s.pdf"`, id))
	return c.Send(data)
}

// OrderBook godoc
// @Summary      Exportar el libro de órdenes del equipo como XLSX
// @Tags         documents
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/delivery-orders/export [get]
func (h *DocumentHandler) OrderBook(c *fiber.Ctx) error {
	data, err := h.uc.ExportOrderBook(c.Context(), tenantFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ordenes-%s.xlsx"`, time.Now().Format("2006-01-02")))
	return c.Send(data)
}
