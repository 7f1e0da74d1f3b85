package notes_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/application/notes"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

const testTeam = "team-1"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders   map[string]*entity.DeliveryOrder
	ratchets int // llamadas a MarkInProgress
}

func (f *fakeOrderRepo) Create(*entity.DeliveryOrder) error                       { return nil }
func (f *fakeOrderRepo) UpdateHeader(*entity.DeliveryOrder) error                 { return nil }
func (f *fakeOrderRepo) ReplaceLines(string, []entity.DeliveryOrderLine) error    { return nil }
func (f *fakeOrderRepo) Delete(string, string) error                              { return nil }
func (f *fakeOrderRepo) List(string, int, int) ([]*entity.DeliveryOrder, error)   { return nil, nil }
func (f *fakeOrderRepo) ListWithLines(string, int, int) ([]*entity.DeliveryOrder, error) {
	return nil, nil
}
func (f *fakeOrderRepo) UpdateStatus(string, string, string) error { return nil }
func (f *fakeOrderRepo) HasNoteReferences(string, string) (bool, error) {
	return false, nil
}

func (f *fakeOrderRepo) GetByID(teamID, id string) (*entity.DeliveryOrder, error) {
	o, ok := f.orders[id]
	if !ok || o.TeamID != teamID {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOrderRepo) GetByIDs(teamID string, ids []string) ([]*entity.DeliveryOrder, error) {
	var out []*entity.DeliveryOrder
	for _, id := range ids {
		if o, ok := f.orders[id]; ok && o.TeamID == teamID {
			out = append(out, o)
		}
	}
	return out, nil
}

// MarkInProgress replica la semántica del UPDATE condicional: solo las
// órdenes en pending avanzan.
func (f *fakeOrderRepo) MarkInProgress(teamID string, orderIDs []string) error {
	f.ratchets++
	for _, id := range orderIDs {
		if o, ok := f.orders[id]; ok && o.TeamID == teamID && o.Status == entity.OrderStatusPending {
			o.Status = entity.OrderStatusInProgress
		}
	}
	return nil
}

type fakeNoteRepo struct {
	notes  map[string]*entity.DeliveryNote
	lines  map[string][]entity.DeliveryNoteLine
	writes int // mutaciones aplicadas (para verificar "sin escritura previa al rechazo")
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{
		notes: make(map[string]*entity.DeliveryNote),
		lines: make(map[string][]entity.DeliveryNoteLine),
	}
}

func (f *fakeNoteRepo) Create(n *entity.DeliveryNote) error {
	f.writes++
	cp := *n
	cp.Lines = nil
	f.notes[n.ID] = &cp
	return nil
}

func (f *fakeNoteRepo) UpdateHeader(n *entity.DeliveryNote) error {
	f.writes++
	stored, ok := f.notes[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != n.Version {
		return domain.ErrConflict
	}
	cp := *n
	cp.Lines = nil
	cp.Version = stored.Version + 1
	f.notes[n.ID] = &cp
	n.Version = cp.Version
	return nil
}

func (f *fakeNoteRepo) ReplaceLines(noteID string, lines []entity.DeliveryNoteLine) error {
	f.writes++
	f.lines[noteID] = append([]entity.DeliveryNoteLine(nil), lines...)
	return nil
}

func (f *fakeNoteRepo) Delete(teamID, id string) error {
	f.writes++
	delete(f.notes, id)
	return nil
}

func (f *fakeNoteRepo) GetByID(teamID, id string) (*entity.DeliveryNote, error) {
	n, ok := f.notes[id]
	if !ok || n.TeamID != teamID {
		return nil, nil
	}
	cp := *n
	cp.Lines = append([]entity.DeliveryNoteLine(nil), f.lines[id]...)
	return &cp, nil
}

func (f *fakeNoteRepo) List(string, int, int) ([]*entity.DeliveryNote, error) { return nil, nil }
func (f *fakeNoteRepo) UpdateStatus(teamID, id, status string) error {
	if n, ok := f.notes[id]; ok {
		n.Status = status
	}
	return nil
}

// fakeTxRunner ejecuta el callback directamente con los fakes (sin tx real).
type fakeTxRunner struct {
	noteRepo  *fakeNoteRepo
	orderRepo *fakeOrderRepo
}

func (f *fakeTxRunner) RunNotes(_ context.Context, fn func(
	noteRepo repository.DeliveryNoteRepository,
	orderRepo repository.DeliveryOrderRepository,
) error) error {
	return fn(f.noteRepo, f.orderRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func pendingOrder(id, number string, lineIDs ...string) *entity.DeliveryOrder {
	o := &entity.DeliveryOrder{
		ID:          id,
		TeamID:      testTeam,
		OrderNumber: number,
		Status:      entity.OrderStatusPending,
		Version:     1,
	}
	for _, lid := range lineIDs {
		o.Lines = append(o.Lines, entity.DeliveryOrderLine{
			ID:       lid,
			OrderID:  id,
			Quantity: decimal.NewFromInt(10),
		})
	}
	return o
}

func buildUseCases(orders ...*entity.DeliveryOrder) (*notes.ReconcileUseCase, *fakeNoteRepo, *fakeOrderRepo) {
	orderRepo := &fakeOrderRepo{orders: make(map[string]*entity.DeliveryOrder)}
	for _, o := range orders {
		orderRepo.orders[o.ID] = o
	}
	noteRepo := newFakeNoteRepo()
	tx := &fakeTxRunner{noteRepo: noteRepo, orderRepo: orderRepo}
	return notes.NewReconcileUseCase(tx, noteRepo, orderRepo), noteRepo, orderRepo
}

func tc() domain.TenantContext {
	return domain.TenantContext{TeamID: testTeam, UserID: "user-1"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Una remisión que referencia líneas de las órdenes A y B mueve ambas de
// pending a in_progress y deja intacta la orden C no referenciada.
func TestReconcile_Create_TrinqueteSobreOrdenesTocadas(t *testing.T) {
	orderA := pendingOrder("ord-a", "DO-001", "lin-a1")
	orderB := pendingOrder("ord-b", "DO-002", "lin-b1", "lin-b2")
	orderC := pendingOrder("ord-c", "DO-003", "lin-c1")
	uc, noteRepo, orderRepo := buildUseCases(orderA, orderB, orderC)

	res, err := uc.Create(context.Background(), tc(), dto.CreateNoteRequest{
		NoteNumber: "DN-001",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "8"},
			{DeliveryOrderID: "ord-b", DeliveryOrderItemID: "lin-b2", ActualQty: "12"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, entity.OrderStatusInProgress, orderA.Status, "orden A debe avanzar a in_progress")
	assert.Equal(t, entity.OrderStatusInProgress, orderB.Status, "orden B debe avanzar a in_progress")
	assert.Equal(t, entity.OrderStatusPending, orderC.Status, "orden C no referenciada queda intacta")
	assert.Len(t, noteRepo.lines[res.ID], 2)
	assert.Equal(t, 1, orderRepo.ratchets)
}

// La sobre-entrega (actual > planificado) se acepta tal cual, no es error.
func TestReconcile_Create_SobreEntregaAceptada(t *testing.T) {
	orderA := pendingOrder("ord-a", "DO-001", "lin-a1") // planificado: 10
	uc, noteRepo, _ := buildUseCases(orderA)

	res, err := uc.Create(context.Background(), tc(), dto.CreateNoteRequest{
		NoteNumber: "DN-002",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "25"},
		},
	})
	require.NoError(t, err)
	assert.True(t, noteRepo.lines[res.ID][0].ActualQty.Equal(decimal.NewFromInt(25)))
}

// Reenviar la misma actualización (payload idéntico, versión fresca) produce
// el mismo set final de líneas y los mismos estados: el trinquete es inocuo
// en repetición y el reemplazo no duplica líneas.
func TestReconcile_Update_Idempotente(t *testing.T) {
	orderA := pendingOrder("ord-a", "DO-001", "lin-a1")
	orderB := pendingOrder("ord-b", "DO-002", "lin-b1")
	uc, noteRepo, orderRepo := buildUseCases(orderA, orderB)

	created, err := uc.Create(context.Background(), tc(), dto.CreateNoteRequest{
		NoteNumber: "DN-003",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "5"},
		},
	})
	require.NoError(t, err)

	update := dto.UpdateNoteRequest{
		NoteNumber: "DN-003",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "5"},
			{DeliveryOrderID: "ord-b", DeliveryOrderItemID: "lin-b1", ActualQty: "7"},
		},
	}

	update.Version = 1
	first, err := uc.Update(context.Background(), tc(), created.ID, update)
	require.NoError(t, err)

	update.Version = first.Version
	second, err := uc.Update(context.Background(), tc(), created.ID, update)
	require.NoError(t, err)

	assert.Len(t, noteRepo.lines[created.ID], 2, "el reemplazo no debe duplicar líneas")
	assert.Len(t, second.Lines, 2)
	assert.Equal(t, entity.OrderStatusInProgress, orderA.Status)
	assert.Equal(t, entity.OrderStatusInProgress, orderB.Status)
	assert.GreaterOrEqual(t, orderRepo.ratchets, 2, "el trinquete se aplica en cada reconciliación")
}

// Un par (orden, línea) donde la línea pertenece a otra orden se rechaza
// antes de cualquier escritura.
func TestReconcile_Create_ParOrdenLineaAjeno(t *testing.T) {
	orderA := pendingOrder("ord-a", "DO-001", "lin-a1")
	orderB := pendingOrder("ord-b", "DO-002", "lin-b1")
	uc, noteRepo, orderRepo := buildUseCases(orderA, orderB)

	_, err := uc.Create(context.Background(), tc(), dto.CreateNoteRequest{
		NoteNumber: "DN-004",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			// lin-b1 no pertenece a ord-a
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-b1", ActualQty: "3"},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.Zero(t, noteRepo.writes, "el rechazo ocurre antes de cualquier escritura")
	assert.Zero(t, orderRepo.ratchets)
	assert.Equal(t, entity.OrderStatusPending, orderA.Status)
}

// Una orden inexistente (o de otro tenant) también es referencia inválida.
func TestReconcile_Create_OrdenDesconocida(t *testing.T) {
	uc, noteRepo, _ := buildUseCases(pendingOrder("ord-a", "DO-001", "lin-a1"))

	_, err := uc.Create(context.Background(), tc(), dto.CreateNoteRequest{
		NoteNumber: "DN-005",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-x", DeliveryOrderItemID: "lin-x1", ActualQty: "3"},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.Zero(t, noteRepo.writes)
}

// Cantidad entregada cero o ilegible es entrada inválida.
func TestReconcile_Create_CantidadInvalida(t *testing.T) {
	uc, _, _ := buildUseCases(pendingOrder("ord-a", "DO-001", "lin-a1"))

	_, err := uc.Create(context.Background(), tc(), dto.CreateNoteRequest{
		NoteNumber: "DN-006",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "sin número"},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una remisión entregada ya no admite reemplazo de líneas.
func TestReconcile_Update_NoEditable(t *testing.T) {
	orderA := pendingOrder("ord-a", "DO-001", "lin-a1")
	uc, noteRepo, _ := buildUseCases(orderA)

	created, err := uc.Create(context.Background(), tc(), dto.CreateNoteRequest{
		NoteNumber: "DN-007",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "5"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, noteRepo.UpdateStatus(testTeam, created.ID, entity.NoteStatusDelivered))

	_, err = uc.Update(context.Background(), tc(), created.ID, dto.UpdateNoteRequest{
		NoteNumber: "DN-007",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "6"},
		},
		Version: 1,
	})
	require.ErrorIs(t, err, domain.ErrNotEditable)
}

// Una versión desactualizada en el update se detecta como conflicto
// (concurrencia optimista sobre el reemplazo delete+insert).
func TestReconcile_Update_VersionDesactualizada(t *testing.T) {
	orderA := pendingOrder("ord-a", "DO-001", "lin-a1")
	uc, _, _ := buildUseCases(orderA)

	created, err := uc.Create(context.Background(), tc(), dto.CreateNoteRequest{
		NoteNumber: "DN-008",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "5"},
		},
	})
	require.NoError(t, err)

	update := dto.UpdateNoteRequest{
		NoteNumber: "DN-008",
		IssueDate:  "2026-08-15",
		Items: []dto.NoteItemRequest{
			{DeliveryOrderID: "ord-a", DeliveryOrderItemID: "lin-a1", ActualQty: "9"},
		},
		Version: 1,
	}
	_, err = uc.Update(context.Background(), tc(), created.ID, update)
	require.NoError(t, err)

	// Segundo editor con el token viejo
	_, err = uc.Update(context.Background(), tc(), created.ID, update)
	require.ErrorIs(t, err, domain.ErrConflict)
}
