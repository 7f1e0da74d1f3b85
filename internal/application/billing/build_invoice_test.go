package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/application/billing"
	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

const testTeam = "team-1"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string][]entity.InvoiceLine
	numbers  map[string]bool // (número) emitidos, para la restricción única
	forceDup int             // Create falla con ErrDuplicate estas veces (concurrente ganó)
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		lines:    make(map[string][]entity.InvoiceLine),
		numbers:  make(map[string]bool),
	}
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if f.forceDup > 0 {
		f.forceDup--
		f.numbers[inv.InvoiceNumber] = true // el concurrente tomó el número
		return domain.ErrDuplicate
	}
	if f.numbers[inv.InvoiceNumber] {
		return domain.ErrDuplicate
	}
	f.numbers[inv.InvoiceNumber] = true
	cp := *inv
	cp.Lines = nil
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) CreateLine(l *entity.InvoiceLine) error {
	f.lines[l.InvoiceID] = append(f.lines[l.InvoiceID], *l)
	return nil
}

func (f *fakeInvoiceRepo) NextSequence(teamID, period string) (int, error) {
	max := 0
	for _, inv := range f.invoices {
		if inv.TeamID == teamID && inv.Period == period && inv.Sequence > max {
			max = inv.Sequence
		}
	}
	// números quemados por creaciones concurrentes también cuentan
	for seq := max + 1; ; seq++ {
		if !f.numbers[fmt.Sprintf("INV/%s-%04d", period, seq)] {
			return seq, nil
		}
	}
}

func (f *fakeInvoiceRepo) GetByID(teamID, id string) (*entity.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok || inv.TeamID != teamID {
		return nil, nil
	}
	cp := *inv
	cp.Lines = append([]entity.InvoiceLine(nil), f.lines[id]...)
	return &cp, nil
}

func (f *fakeInvoiceRepo) List(string, int, int) ([]*entity.Invoice, error) { return nil, nil }
func (f *fakeInvoiceRepo) UpdateStatus(teamID, id, status string) error {
	if inv, ok := f.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.DeliveryOrder
}

func (f *fakeOrderRepo) Create(*entity.DeliveryOrder) error                    { return nil }
func (f *fakeOrderRepo) UpdateHeader(*entity.DeliveryOrder) error              { return nil }
func (f *fakeOrderRepo) ReplaceLines(string, []entity.DeliveryOrderLine) error { return nil }
func (f *fakeOrderRepo) Delete(string, string) error                           { return nil }
func (f *fakeOrderRepo) List(string, int, int) ([]*entity.DeliveryOrder, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListWithLines(string, int, int) ([]*entity.DeliveryOrder, error) {
	return nil, nil
}
func (f *fakeOrderRepo) MarkInProgress(string, []string) error          { return nil }
func (f *fakeOrderRepo) UpdateStatus(string, string, string) error      { return nil }
func (f *fakeOrderRepo) HasNoteReferences(string, string) (bool, error) { return false, nil }

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

type fakeCompanyRepo struct{ items map[string]*entity.Company }

func (f *fakeCompanyRepo) Create(c *entity.Company) error { f.items[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(teamID, id string) (*entity.Company, error) {
	c, ok := f.items[id]
	if !ok || c.TeamID != teamID {
		return nil, nil
	}
	return c, nil
}
func (f *fakeCompanyRepo) List(string, int, int) ([]*entity.Company, error) { return nil, nil }

type fakeItemRepo struct{ items map[string]*entity.CatalogItem }

func (f *fakeItemRepo) Create(i *entity.CatalogItem) error { f.items[i.ID] = i; return nil }
func (f *fakeItemRepo) GetByID(teamID, id string) (*entity.CatalogItem, error) {
	i, ok := f.items[id]
	if !ok || i.TeamID != teamID {
		return nil, nil
	}
	return i, nil
}
func (f *fakeItemRepo) List(string, int, int) ([]*entity.CatalogItem, error) { return nil, nil }

type fakeTxRunner struct {
	invoiceRepo *fakeInvoiceRepo
	orderRepo   *fakeOrderRepo
}

func (f *fakeTxRunner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.DeliveryOrderRepository,
) error) error {
	return fn(f.invoiceRepo, f.orderRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc          *billing.BuildInvoiceUseCase
	invoiceRepo *fakeInvoiceRepo
	orderRepo   *fakeOrderRepo

	companyID string
	otherID   string
	itemID    string
}

func newFixture() *fixture {
	f := &fixture{
		invoiceRepo: newFakeInvoiceRepo(),
		orderRepo:   &fakeOrderRepo{orders: make(map[string]*entity.DeliveryOrder)},
		companyID:   uuid.New().String(),
		otherID:     uuid.New().String(),
		itemID:      uuid.New().String(),
	}
	companyRepo := &fakeCompanyRepo{items: map[string]*entity.Company{
		f.companyID: {ID: f.companyID, TeamID: testTeam, Name: "Constructora Delta"},
		f.otherID:   {ID: f.otherID, TeamID: testTeam, Name: "Agregados del Norte"},
	}}
	itemRepo := &fakeItemRepo{items: map[string]*entity.CatalogItem{
		f.itemID: {ID: f.itemID, TeamID: testTeam, Name: "Arena lavada", Unit: "m3", Price: decimal.NewFromInt(475000)},
	}}
	f.uc = billing.NewBuildInvoiceUseCase(
		&fakeTxRunner{invoiceRepo: f.invoiceRepo, orderRepo: f.orderRepo},
		f.invoiceRepo,
		f.orderRepo,
		companyRepo,
		itemRepo,
		"INV",
	)
	return f
}

// addOrder registra una orden con una línea por cada total indicado,
// facturada a la contraparte como cliente.
func (f *fixture) addOrder(number string, lineTotals ...int64) string {
	o := &entity.DeliveryOrder{
		ID:          uuid.New().String(),
		TeamID:      testTeam,
		OrderNumber: number,
		SupplierID:  f.otherID,
		CustomerID:  f.companyID,
		Status:      entity.OrderStatusCompleted,
		Version:     1,
	}
	for i, total := range lineTotals {
		o.Lines = append(o.Lines, entity.DeliveryOrderLine{
			ID:         uuid.New().String(),
			OrderID:    o.ID,
			ItemID:     f.itemID,
			Quantity:   decimal.NewFromInt(1),
			UnitPrice:  decimal.NewFromInt(total),
			TotalPrice: decimal.NewFromInt(total),
			Position:   i,
		})
	}
	f.orderRepo.orders[o.ID] = o
	return o.ID
}

func tc() domain.TenantContext {
	return domain.TenantContext{TeamID: testTeam, UserID: "user-1"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El total de la factura es la suma decimal exacta de los totales de línea
// de todas las órdenes agregadas: 1.900.000 + 2.500.000 + 1.500.000 = 5.900.000.
func TestBuildInvoice_AgregaYSuma(t *testing.T) {
	f := newFixture()
	ordA := f.addOrder("DO-001", 1_900_000)
	ordB := f.addOrder("DO-002", 2_500_000, 1_500_000)

	res, err := f.uc.BuildInvoice(context.Background(), tc(), dto.BuildInvoiceRequest{
		CompanyID:        f.companyID,
		DeliveryOrderIDs: []string{ordA, ordB},
	})
	require.NoError(t, err)

	assert.True(t, res.TotalAmount.Equal(decimal.NewFromInt(5_900_000)),
		"total esperado 5.900.000, obtenido %s", res.TotalAmount)
	assert.Len(t, res.Lines, 3, "una fila facturable por cada línea de orden")
	assert.Equal(t, entity.InvoiceStatusDraft, res.Status)
	assert.Equal(t, "Arena lavada", res.Lines[0].Description)

	period := time.Now().Format("2006/01")
	assert.Equal(t, fmt.Sprintf("INV/%s-0001", period), res.InvoiceNumber)
}

// La factura es un snapshot: mutar la orden después de facturar no cambia
// ni el total ni las líneas guardadas.
func TestBuildInvoice_SnapshotInmutable(t *testing.T) {
	f := newFixture()
	ordA := f.addOrder("DO-001", 1_900_000)

	res, err := f.uc.BuildInvoice(context.Background(), tc(), dto.BuildInvoiceRequest{
		CompanyID:        f.companyID,
		DeliveryOrderIDs: []string{ordA},
	})
	require.NoError(t, err)

	// el precio de la orden cambia después de facturar
	f.orderRepo.orders[ordA].Lines[0].UnitPrice = decimal.NewFromInt(9_999_999)
	f.orderRepo.orders[ordA].Lines[0].TotalPrice = decimal.NewFromInt(9_999_999)

	reread, err := f.uc.GetByID(context.Background(), tc(), res.ID)
	require.NoError(t, err)
	assert.True(t, reread.TotalAmount.Equal(decimal.NewFromInt(1_900_000)))
	assert.True(t, reread.Lines[0].TotalPrice.Equal(decimal.NewFromInt(1_900_000)))
}

// El consecutivo avanza dentro del periodo.
func TestBuildInvoice_ConsecutivoPorPeriodo(t *testing.T) {
	f := newFixture()
	period := time.Now().Format("2006/01")

	for i := 1; i <= 3; i++ {
		ord := f.addOrder(fmt.Sprintf("DO-%03d", i), 100_000)
		res, err := f.uc.BuildInvoice(context.Background(), tc(), dto.BuildInvoiceRequest{
			CompanyID:        f.companyID,
			DeliveryOrderIDs: []string{ord},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV/%s-%04d", period, i), res.InvoiceNumber)
	}
}

// Si una creación concurrente toma el número primero, la perdedora reintenta
// con el siguiente consecutivo y termina bien.
func TestBuildInvoice_ReintentoAnteColision(t *testing.T) {
	f := newFixture()
	ord := f.addOrder("DO-001", 100_000)
	f.invoiceRepo.forceDup = 1

	res, err := f.uc.BuildInvoice(context.Background(), tc(), dto.BuildInvoiceRequest{
		CompanyID:        f.companyID,
		DeliveryOrderIDs: []string{ord},
	})
	require.NoError(t, err)

	period := time.Now().Format("2006/01")
	assert.Equal(t, fmt.Sprintf("INV/%s-0002", period), res.InvoiceNumber,
		"tras la colisión toma el siguiente consecutivo")
}

// Agotados los reintentos, la creación falla con conflicto.
func TestBuildInvoice_ReintentosAgotados(t *testing.T) {
	f := newFixture()
	ord := f.addOrder("DO-001", 100_000)
	f.invoiceRepo.forceDup = 10

	_, err := f.uc.BuildInvoice(context.Background(), tc(), dto.BuildInvoiceRequest{
		CompanyID:        f.companyID,
		DeliveryOrderIDs: []string{ord},
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

// La contraparte facturada debe participar en cada orden del conjunto.
func TestBuildInvoice_ContraparteAjena(t *testing.T) {
	f := newFixture()
	ord := f.addOrder("DO-001", 100_000)
	stranger := uuid.New().String()
	f.orderRepo.orders[ord].SupplierID = stranger
	f.orderRepo.orders[ord].CustomerID = uuid.New().String()

	_, err := f.uc.BuildInvoice(context.Background(), tc(), dto.BuildInvoiceRequest{
		CompanyID:        f.companyID,
		DeliveryOrderIDs: []string{ord},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Órdenes inexistentes o de otro tenant son referencia inválida.
func TestBuildInvoice_OrdenDesconocida(t *testing.T) {
	f := newFixture()

	_, err := f.uc.BuildInvoice(context.Background(), tc(), dto.BuildInvoiceRequest{
		CompanyID:        f.companyID,
		DeliveryOrderIDs: []string{uuid.New().String()},
	})
	require.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestInvoice_TransicionesDeEstado(t *testing.T) {
	f := newFixture()
	ord := f.addOrder("DO-001", 100_000)

	res, err := f.uc.BuildInvoice(context.Background(), tc(), dto.BuildInvoiceRequest{
		CompanyID:        f.companyID,
		DeliveryOrderIDs: []string{ord},
	})
	require.NoError(t, err)

	// draft → paid no es válido: primero hay que enviarla
	_, err = f.uc.UpdateStatus(context.Background(), tc(), res.ID, entity.InvoiceStatusPaid)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	sent, err := f.uc.UpdateStatus(context.Background(), tc(), res.ID, entity.InvoiceStatusSent)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, sent.Status)

	paid, err := f.uc.UpdateStatus(context.Background(), tc(), res.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)
}
