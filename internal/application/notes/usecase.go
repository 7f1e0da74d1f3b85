package notes

import (
	"context"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// UseCase operaciones de lectura y ciclo de vida de remisiones que no
// disparan reconciliación (esa vive en ReconcileUseCase).
type UseCase struct {
	txRunner TxRunner
	noteRepo repository.DeliveryNoteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, noteRepo repository.DeliveryNoteRepository) *UseCase {
	return &UseCase{txRunner: txRunner, noteRepo: noteRepo}
}

// GetByID obtiene la remisión con líneas.
func (uc *UseCase) GetByID(_ context.Context, tc domain.TenantContext, id string) (*dto.NoteResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	note, err := uc.noteRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return toNoteResponse(note), nil
}

// List lista remisiones del tenant, paginadas.
func (uc *UseCase) List(_ context.Context, tc domain.TenantContext, page dto.PageRequest) ([]*dto.NoteResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.noteRepo.List(tc.TeamID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// UpdateStatus aplica una transición de estado de la remisión (solo hacia
// adelante; delivered y cancelled son terminales).
func (uc *UseCase) UpdateStatus(_ context.Context, tc domain.TenantContext, id, status string) (*dto.NoteResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !entity.ValidNoteStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	note, err := uc.noteRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransitionNote(note.Status, status) {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.noteRepo.UpdateStatus(tc.TeamID, id, status); err != nil {
		return nil, err
	}
	note.Status = status
	return toNoteResponse(note), nil
}

// Delete borra líneas y cabecera de la remisión. Los estados de las órdenes
// no se tocan: el retroceso a pending es una acción explícita del operador
// sobre el agregado de órdenes.
func (uc *UseCase) Delete(ctx context.Context, tc domain.TenantContext, id string) error {
	if !tc.Valid() {
		return domain.ErrUnauthorized
	}
	note, err := uc.noteRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return err
	}
	if note == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunNotes(ctx, func(
		noteRepo repository.DeliveryNoteRepository,
		_ repository.DeliveryOrderRepository,
	) error {
		if err := noteRepo.ReplaceLines(id, nil); err != nil {
			return err
		}
		return noteRepo.Delete(tc.TeamID, id)
	})
}
