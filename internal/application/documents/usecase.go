package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// Tope de órdenes hidratadas para el libro Excel.
const orderBookLimit = 1000

// UseCase ensambla los modelos de documento resolviendo nombres desde las
// llaves foráneas y orquesta los renderizadores (PDF, Excel, XML). El caller
// de cada operación es responsable de transmitir o guardar los bytes.
type UseCase struct {
	noteRepo    repository.DeliveryNoteRepository
	orderRepo   repository.DeliveryOrderRepository
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	driverRepo  repository.DriverRepository
	itemRepo    repository.CatalogItemRepository
	pdf         DeliveryPDFRenderer
	excel       OrderBookExporter
	xml         InvoiceXMLExporter
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	noteRepo repository.DeliveryNoteRepository,
	orderRepo repository.DeliveryOrderRepository,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	driverRepo repository.DriverRepository,
	itemRepo repository.CatalogItemRepository,
	pdf DeliveryPDFRenderer,
	excel OrderBookExporter,
	xml InvoiceXMLExporter,
) *UseCase {
	return &UseCase{
		noteRepo:    noteRepo,
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		driverRepo:  driverRepo,
		itemRepo:    itemRepo,
		pdf:         pdf,
		excel:       excel,
		xml:         xml,
	}
}

// RenderNotePDF ensambla el documento de la remisión y lo renderiza. En el
// primer render de un borrador la remisión pasa a printed.
func (uc *UseCase) RenderNotePDF(ctx context.Context, tc domain.TenantContext, noteID string) ([]byte, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	note, err := uc.noteRepo.GetByID(tc.TeamID, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	doc, err := uc.buildNoteDocument(tc, note)
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.RenderDelivery(ctx, doc)
	if err != nil {
		return nil, err
	}
	if note.Status == entity.NoteStatusDraft {
		if err := uc.noteRepo.UpdateStatus(tc.TeamID, note.ID, entity.NoteStatusPrinted); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RenderOrderPDF ensambla el documento de una orden (un solo proveedor,
// cantidades entregadas en cero) y lo renderiza por el mismo camino.
func (uc *UseCase) RenderOrderPDF(ctx context.Context, tc domain.TenantContext, orderID string) ([]byte, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.orderRepo.GetByID(tc.TeamID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	names, err := uc.resolveOrderNames(tc, []*entity.DeliveryOrder{order})
	if err != nil {
		return nil, err
	}
	doc := DeliveryDocument{
		Title:     "ORDEN DE ENTREGA",
		Number:    order.OrderNumber,
		IssueDate: order.OrderDate,
	}
	for _, l := range order.Lines {
		item := names.items[l.ItemID]
		doc.Rows = append(doc.Rows, DocumentRow{
			SupplierName:    names.companies[order.SupplierID],
			CustomerName:    names.companies[order.CustomerID],
			DriverName:      names.drivers[order.MainDriverID],
			ItemDescription: item.name,
			Unit:            item.unit,
			PlannedQty:      l.Quantity,
			ActualQty:       decimal.Zero,
			OrderNumber:     order.OrderNumber,
			Destination:     order.DeliveryAddress,
		})
	}
	return uc.pdf.RenderDelivery(ctx, doc)
}

// ExportOrderBook exporta el libro de órdenes del tenant a XLSX.
func (uc *UseCase) ExportOrderBook(ctx context.Context, tc domain.TenantContext) ([]byte, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	orders, err := uc.orderRepo.ListWithLines(tc.TeamID, orderBookLimit, 0)
	if err != nil {
		return nil, err
	}
	names, err := uc.resolveOrderNames(tc, orders)
	if err != nil {
		return nil, err
	}
	book := OrderBook{GeneratedAt: time.Now()}
	for _, o := range orders {
		total := decimal.Zero
		for _, l := range o.Lines {
			total = total.Add(l.TotalPrice)
		}
		book.Rows = append(book.Rows, OrderBookRow{
			OrderNumber:  o.OrderNumber,
			SupplierName: names.companies[o.SupplierID],
			CustomerName: names.companies[o.CustomerID],
			DeliveryDate: o.DeliveryDate,
			Status:       o.Status,
			LineCount:    len(o.Lines),
			TotalAmount:  total,
		})
	}
	return uc.excel.ExportOrderBook(ctx, book)
}

// ExportInvoiceXML exporta una factura como XML contable.
func (uc *UseCase) ExportInvoiceXML(ctx context.Context, tc domain.TenantContext, invoiceID string) ([]byte, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	inv, err := uc.invoiceRepo.GetByID(tc.TeamID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(tc.TeamID, inv.CompanyID)
	if err != nil {
		return nil, err
	}
	doc := InvoiceDocument{
		Number:      inv.InvoiceNumber,
		IssueDate:   inv.IssueDate,
		Status:      inv.Status,
		TotalAmount: inv.TotalAmount,
	}
	if company != nil {
		doc.CompanyName = company.Name
		doc.CompanyTax = company.TaxID
	}
	for _, l := range inv.Lines {
		doc.Lines = append(doc.Lines, InvoiceDocumentLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.TotalPrice,
		})
	}
	return uc.xml.ExportInvoice(ctx, doc)
}

// buildNoteDocument aplana la remisión: cada línea se junta con su orden,
// artículo y contrapartes resueltos por nombre.
func (uc *UseCase) buildNoteDocument(tc domain.TenantContext, note *entity.DeliveryNote) (DeliveryDocument, error) {
	doc := DeliveryDocument{
		Title:     "REMISIÓN DE ENTREGA",
		Number:    note.NoteNumber,
		IssueDate: note.IssueDate,
		Remarks:   note.Remarks,
	}

	orderIDs := make([]string, 0, len(note.Lines))
	seen := make(map[string]bool, len(note.Lines))
	for _, l := range note.Lines {
		if !seen[l.DeliveryOrderID] {
			seen[l.DeliveryOrderID] = true
			orderIDs = append(orderIDs, l.DeliveryOrderID)
		}
	}
	orders, err := uc.orderRepo.GetByIDs(tc.TeamID, orderIDs)
	if err != nil {
		return doc, err
	}
	ordersByID := make(map[string]*entity.DeliveryOrder, len(orders))
	for _, o := range orders {
		ordersByID[o.ID] = o
	}
	names, err := uc.resolveOrderNames(tc, orders)
	if err != nil {
		return doc, err
	}

	for _, l := range note.Lines {
		order, ok := ordersByID[l.DeliveryOrderID]
		if !ok {
			return doc, domain.ErrInvalidReference
		}
		var planned decimal.Decimal
		var itemID string
		for _, ol := range order.Lines {
			if ol.ID == l.DeliveryOrderLineID {
				planned = ol.Quantity
				itemID = ol.ItemID
				break
			}
		}
		item := names.items[itemID]
		doc.Rows = append(doc.Rows, DocumentRow{
			SupplierName:    names.companies[order.SupplierID],
			CustomerName:    names.companies[order.CustomerID],
			DriverName:      names.drivers[order.MainDriverID],
			ItemDescription: item.name,
			Unit:            item.unit,
			PlannedQty:      planned,
			ActualQty:       l.ActualQty,
			OrderNumber:     order.OrderNumber,
			Destination:     order.DeliveryAddress,
		})
	}
	return doc, nil
}

type itemInfo struct {
	name string
	unit string
}

type resolvedNames struct {
	companies map[string]string
	drivers   map[string]string
	items     map[string]itemInfo
}

// resolveOrderNames junta en un solo paso los nombres de contrapartes,
// conductores y artículos referenciados por el set de órdenes.
func (uc *UseCase) resolveOrderNames(tc domain.TenantContext, orders []*entity.DeliveryOrder) (resolvedNames, error) {
	out := resolvedNames{
		companies: make(map[string]string),
		drivers:   make(map[string]string),
		items:     make(map[string]itemInfo),
	}
	for _, o := range orders {
		for _, companyID := range []string{o.SupplierID, o.CustomerID} {
			if _, ok := out.companies[companyID]; ok {
				continue
			}
			c, err := uc.companyRepo.GetByID(tc.TeamID, companyID)
			if err != nil {
				return out, err
			}
			if c != nil {
				out.companies[companyID] = c.Name
			}
		}
		if _, ok := out.drivers[o.MainDriverID]; !ok {
			d, err := uc.driverRepo.GetByID(tc.TeamID, o.MainDriverID)
			if err != nil {
				return out, err
			}
			if d != nil {
				out.drivers[o.MainDriverID] = d.Name
			}
		}
		for _, l := range o.Lines {
			if _, ok := out.items[l.ItemID]; ok {
				continue
			}
			it, err := uc.itemRepo.GetByID(tc.TeamID, l.ItemID)
			if err != nil {
				return out, err
			}
			if it != nil {
				out.items[l.ItemID] = itemInfo{name: it.Name, unit: it.Unit}
			}
		}
	}
	return out, nil
}
