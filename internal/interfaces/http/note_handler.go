package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/application/notes"
	"github.com/tu-usuario/logistica-api/pkg/validate"
)

// NoteHandler maneja las peticiones HTTP para remisiones de entrega.
// Crear y actualizar pasan por la conciliación (líneas contra órdenes);
// el resto de operaciones son de consulta y ciclo de vida.
type NoteHandler struct {
	reconcile *notes.ReconcileUseCase
	uc        *notes.UseCase
}

// NewNoteHandler construye el handler inyectando ambos casos de uso.
func NewNoteHandler(reconcile *notes.ReconcileUseCase, uc *notes.UseCase) *NoteHandler {
	return &NoteHandler{reconcile: reconcile, uc: uc}
}

// Create godoc
// @Summary      Crear remisión (concilia líneas y avanza órdenes tocadas a in_progress)
// @Tags         delivery-notes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "Cabecera y líneas por orden"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/delivery-notes [post]
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.reconcile.Create(c.Context(), tenantFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar remisión (reemplaza líneas; solo en draft o printed)
// @Tags         delivery-notes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la remisión"
// @Param        body  body  dto.UpdateNoteRequest  true  "Cabecera, líneas y versión"
// @Success      200   {object}  dto.NoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/delivery-notes/{id} [put]
func (h *NoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.reconcile.Update(c.Context(), tenantFromCtx(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transición explícita de estado de la remisión
// @Tags         delivery-notes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la remisión"
// @Param        body  body  dto.UpdateNoteStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.NoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/delivery-notes/{id}/status [patch]
func (h *NoteHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateNoteStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.UpdateStatus(c.Context(), tenantFromCtx(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar remisión y sus líneas
// @Tags         delivery-notes
// @Param        id  path  string  true  "ID de la remisión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/delivery-notes/{id} [delete]
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), tenantFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener remisión por ID (con líneas)
// @Tags         delivery-notes
// @Produce      json
// @Param        id   path  string  true  "ID de la remisión"
// @Success      200  {object}  dto.NoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/delivery-notes/{id} [get]
func (h *NoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), tenantFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar remisiones
// @Tags         delivery-notes
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.NoteResponse
// @Router       /api/delivery-notes [get]
func (h *NoteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.uc.List(c.Context(), tenantFromCtx(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
