package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// Intentos del consecutivo ante colisión de número con otra creación concurrente.
const maxNumberAttempts = 3

// BuildInvoiceUseCase agrega órdenes de entrega en una factura: aplana sus
// líneas en filas facturables y calcula el total. La factura es un snapshot
// de lectura — editar un precio después de facturar no cambia el total ni
// las líneas guardadas.
type BuildInvoiceUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.DeliveryOrderRepository
	companyRepo repository.CompanyRepository
	itemRepo    repository.CatalogItemRepository
	prefix      string // prefijo del consecutivo, ej. "INV"
}

// NewBuildInvoiceUseCase construye el caso de uso.
func NewBuildInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.DeliveryOrderRepository,
	companyRepo repository.CompanyRepository,
	itemRepo repository.CatalogItemRepository,
	prefix string,
) *BuildInvoiceUseCase {
	return &BuildInvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		itemRepo:    itemRepo,
		prefix:      prefix,
	}
}

// BuildInvoice crea la factura para la contraparte con las órdenes indicadas.
// El consecutivo es por tenant y por periodo (mes/año): "siguiente número no
// usado mayor al último emitido". Dos creaciones concurrentes se serializan
// por la restricción única (team_id, invoice_number): la perdedora reintenta
// con el siguiente consecutivo.
func (uc *BuildInvoiceUseCase) BuildInvoice(ctx context.Context, tc domain.TenantContext, in dto.BuildInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	company, err := uc.companyRepo.GetByID(tc.TeamID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrInvalidReference
	}

	orders, err := uc.orderRepo.GetByIDs(tc.TeamID, in.DeliveryOrderIDs)
	if err != nil {
		return nil, err
	}
	if len(orders) != len(distinct(in.DeliveryOrderIDs)) {
		return nil, domain.ErrInvalidReference
	}
	for _, o := range orders {
		// Por convención la contraparte facturada participa en cada orden,
		// como proveedor o como cliente.
		if o.SupplierID != in.CompanyID && o.CustomerID != in.CompanyID {
			return nil, domain.ErrInvalidInput
		}
	}

	lines, total, err := uc.flattenLines(tc, orders)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	period := now.Format("2006/01")
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		TeamID:      tc.TeamID,
		Period:      period,
		CompanyID:   in.CompanyID,
		IssueDate:   now,
		Status:      entity.InvoiceStatusDraft,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
		Lines:       lines,
	}
	for i := range inv.Lines {
		inv.Lines[i].ID = uuid.New().String()
		inv.Lines[i].InvoiceID = inv.ID
		inv.Lines[i].Position = i
	}

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err = uc.txRunner.RunBilling(ctx, func(
			invoiceRepo repository.InvoiceRepository,
			_ repository.DeliveryOrderRepository,
		) error {
			seq, err := invoiceRepo.NextSequence(tc.TeamID, period)
			if err != nil {
				return err
			}
			inv.Sequence = seq
			inv.InvoiceNumber = fmt.Sprintf("%s/%s-%04d", uc.prefix, period, seq)
			if err := invoiceRepo.Create(inv); err != nil {
				return err
			}
			for i := range inv.Lines {
				if err := invoiceRepo.CreateLine(&inv.Lines[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return toInvoiceResponse(inv), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// Número tomado por una creación concurrente: reintentar con el siguiente.
	}
	return nil, domain.ErrConflict
}

// GetByID obtiene la factura con líneas.
func (uc *BuildInvoiceUseCase) GetByID(_ context.Context, tc domain.TenantContext, id string) (*dto.InvoiceResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	inv, err := uc.invoiceRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// List lista facturas del tenant, paginadas.
func (uc *BuildInvoiceUseCase) List(_ context.Context, tc domain.TenantContext, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(tc.TeamID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// UpdateStatus aplica una transición de estado de la factura.
func (uc *BuildInvoiceUseCase) UpdateStatus(_ context.Context, tc domain.TenantContext, id, status string) (*dto.InvoiceResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !entity.ValidInvoiceStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransitionInvoice(inv.Status, status) {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.invoiceRepo.UpdateStatus(tc.TeamID, id, status); err != nil {
		return nil, err
	}
	inv.Status = status
	return toInvoiceResponse(inv), nil
}

// flattenLines aplana las líneas de las órdenes en filas facturables y suma
// el total con aritmética decimal exacta. La descripción se resuelve del
// catálogo al momento de facturar y queda copiada en la línea (snapshot).
func (uc *BuildInvoiceUseCase) flattenLines(tc domain.TenantContext, orders []*entity.DeliveryOrder) ([]entity.InvoiceLine, decimal.Decimal, error) {
	var lines []entity.InvoiceLine
	total := decimal.Zero
	for _, o := range orders {
		for _, ol := range o.Lines {
			item, err := uc.itemRepo.GetByID(tc.TeamID, ol.ItemID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			description := ol.ItemID
			if item != nil {
				description = item.Name
			}
			lines = append(lines, entity.InvoiceLine{
				DeliveryOrderID:     o.ID,
				DeliveryOrderLineID: ol.ID,
				Description:         description,
				Quantity:            ol.Quantity,
				UnitPrice:           ol.UnitPrice,
				TotalPrice:          ol.TotalPrice,
			})
			total = total.Add(ol.TotalPrice)
		}
	}
	if len(lines) == 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	return lines, total, nil
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CompanyID:     inv.CompanyID,
		IssueDate:     inv.IssueDate.Format(dateLayout),
		Status:        inv.Status,
		TotalAmount:   inv.TotalAmount,
		Lines:         make([]dto.InvoiceLineResponse, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		out.Lines = append(out.Lines, dto.InvoiceLineResponse{
			ID:              l.ID,
			DeliveryOrderID: l.DeliveryOrderID,
			Description:     l.Description,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			TotalPrice:      l.TotalPrice,
		})
	}
	return out
}
