package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// DeliveryNoteRepository define el puerto de persistencia para remisiones.
type DeliveryNoteRepository interface {
	// Create persiste solo la cabecera. Número duplicado → domain.ErrDuplicate.
	Create(note *entity.DeliveryNote) error
	// UpdateHeader actualiza la cabecera con check de versión optimista
	// (domain.ErrConflict si no coincide). En éxito incrementa note.Version.
	UpdateHeader(note *entity.DeliveryNote) error
	// ReplaceLines reemplaza el set completo de líneas (delete + insert).
	ReplaceLines(noteID string, lines []entity.DeliveryNoteLine) error
	Delete(teamID, id string) error
	GetByID(teamID, id string) (*entity.DeliveryNote, error)
	List(teamID string, limit, offset int) ([]*entity.DeliveryNote, error)
	UpdateStatus(teamID, id, status string) error
}
