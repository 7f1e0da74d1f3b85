package notes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/pricing"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ReconcileUseCase es el coordinador de reconciliación: al crear o actualizar
// una remisión, (a) persiste cabecera y líneas, y (b) propaga el trinquete de
// estado pending→in_progress sobre las órdenes tocadas. Todo en una sola
// transacción; nunca queda estado parcial visible.
//
// El coordinador jamás marca completed ni canceled: esos son cierres
// explícitos del operador sobre el agregado de órdenes.
type ReconcileUseCase struct {
	txRunner  TxRunner
	noteRepo  repository.DeliveryNoteRepository
	orderRepo repository.DeliveryOrderRepository
}

// NewReconcileUseCase construye el coordinador.
func NewReconcileUseCase(
	txRunner TxRunner,
	noteRepo repository.DeliveryNoteRepository,
	orderRepo repository.DeliveryOrderRepository,
) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, noteRepo: noteRepo, orderRepo: orderRepo}
}

// Create registra una remisión nueva y reconcilia las órdenes referenciadas.
func (uc *ReconcileUseCase) Create(ctx context.Context, tc domain.TenantContext, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	lines, err := buildNoteLines(in.Items)
	if err != nil {
		return nil, err
	}

	issueDate, _ := time.Parse(dateLayout, in.IssueDate)
	now := time.Now()
	note := &entity.DeliveryNote{
		ID:         uuid.New().String(),
		TeamID:     tc.TeamID,
		NoteNumber: in.NoteNumber,
		IssueDate:  issueDate,
		Remarks:    in.Remarks,
		Status:     entity.NoteStatusDraft,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
		Lines:      lines,
	}
	for i := range note.Lines {
		note.Lines[i].ID = uuid.New().String()
		note.Lines[i].NoteID = note.ID
		note.Lines[i].Position = i
	}

	err = uc.txRunner.RunNotes(ctx, func(
		noteRepo repository.DeliveryNoteRepository,
		orderRepo repository.DeliveryOrderRepository,
	) error {
		touched, err := validateLineRefs(orderRepo, tc.TeamID, note.Lines)
		if err != nil {
			return err
		}
		if err := noteRepo.Create(note); err != nil {
			return err
		}
		if err := noteRepo.ReplaceLines(note.ID, note.Lines); err != nil {
			return err
		}
		return orderRepo.MarkInProgress(tc.TeamID, touched)
	})
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// Update reemplaza el set completo de líneas de la remisión (delete + insert)
// y vuelve a reconciliar. Reenviar el mismo payload dos veces produce el mismo
// set final de líneas y los mismos estados de orden: el trinquete es inocuo
// en repetición.
func (uc *ReconcileUseCase) Update(ctx context.Context, tc domain.TenantContext, id string, in dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	current, err := uc.noteRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if !current.Editable() {
		return nil, domain.ErrNotEditable
	}
	lines, err := buildNoteLines(in.Items)
	if err != nil {
		return nil, err
	}

	issueDate, _ := time.Parse(dateLayout, in.IssueDate)
	note := &entity.DeliveryNote{
		ID:         current.ID,
		TeamID:     tc.TeamID,
		NoteNumber: in.NoteNumber,
		IssueDate:  issueDate,
		Remarks:    in.Remarks,
		Status:     current.Status,
		Version:    in.Version,
		CreatedAt:  current.CreatedAt,
		UpdatedAt:  time.Now(),
		Lines:      lines,
	}
	for i := range note.Lines {
		note.Lines[i].ID = uuid.New().String()
		note.Lines[i].NoteID = note.ID
		note.Lines[i].Position = i
	}

	err = uc.txRunner.RunNotes(ctx, func(
		noteRepo repository.DeliveryNoteRepository,
		orderRepo repository.DeliveryOrderRepository,
	) error {
		touched, err := validateLineRefs(orderRepo, tc.TeamID, note.Lines)
		if err != nil {
			return err
		}
		if err := noteRepo.UpdateHeader(note); err != nil {
			return err
		}
		if err := noteRepo.ReplaceLines(note.ID, note.Lines); err != nil {
			return err
		}
		return orderRepo.MarkInProgress(tc.TeamID, touched)
	})
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// buildNoteLines sanitiza las cantidades entregadas. La sobre/sub-entrega
// frente a lo planificado se acepta tal cual; cantidad cero o ilegible es
// entrada inválida.
func buildNoteLines(items []dto.NoteItemRequest) ([]entity.DeliveryNoteLine, error) {
	lines := make([]entity.DeliveryNoteLine, 0, len(items))
	for _, it := range items {
		qty := pricing.ParseAmount(it.ActualQty)
		if !qty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, entity.DeliveryNoteLine{
			DeliveryOrderID:     it.DeliveryOrderID,
			DeliveryOrderLineID: it.DeliveryOrderItemID,
			ActualQty:           qty,
		})
	}
	return lines, nil
}

// validateLineRefs verifica que cada par (orden, línea) exista, se pertenezca
// y sea del tenant. Corre dentro de la transacción pero antes de cualquier
// escritura: una referencia inválida rechaza la remisión sin tocar filas.
// Devuelve el set de ids de orden distintos tocados por la remisión.
func validateLineRefs(orderRepo repository.DeliveryOrderRepository, teamID string, lines []entity.DeliveryNoteLine) ([]string, error) {
	touched := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.DeliveryOrderID] {
			seen[l.DeliveryOrderID] = true
			touched = append(touched, l.DeliveryOrderID)
		}
	}

	ordersByID := make(map[string]*entity.DeliveryOrder, len(touched))
	found, err := orderRepo.GetByIDs(teamID, touched)
	if err != nil {
		return nil, err
	}
	for _, o := range found {
		ordersByID[o.ID] = o
	}

	for _, l := range lines {
		order, ok := ordersByID[l.DeliveryOrderID]
		if !ok {
			return nil, domain.ErrInvalidReference
		}
		belongs := false
		for _, ol := range order.Lines {
			if ol.ID == l.DeliveryOrderLineID {
				belongs = true
				break
			}
		}
		if !belongs {
			return nil, domain.ErrInvalidReference
		}
	}
	return touched, nil
}

func toNoteResponse(n *entity.DeliveryNote) *dto.NoteResponse {
	out := &dto.NoteResponse{
		ID:         n.ID,
		NoteNumber: n.NoteNumber,
		IssueDate:  n.IssueDate.Format(dateLayout),
		Remarks:    n.Remarks,
		Status:     n.Status,
		Version:    n.Version,
		Lines:      make([]dto.NoteLineResponse, 0, len(n.Lines)),
	}
	for _, l := range n.Lines {
		out.Lines = append(out.Lines, dto.NoteLineResponse{
			ID:                  l.ID,
			DeliveryOrderID:     l.DeliveryOrderID,
			DeliveryOrderItemID: l.DeliveryOrderLineID,
			ActualQty:           l.ActualQty,
		})
	}
	return out
}
