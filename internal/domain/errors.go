package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrNotEditable      = errors.New("el documento ya no es editable")
	ErrInvalidReference = errors.New("referencia orden/línea inválida")
	ErrReferenced       = errors.New("el recurso está referenciado por otro documento")
	ErrInvalidStatus    = errors.New("transición de estado inválida")
)
