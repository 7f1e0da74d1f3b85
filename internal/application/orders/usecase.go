package orders

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

// UseCase operaciones del agregado orden de entrega. La edición de cabecera
// y líneas solo procede mientras la orden está en pending; una vez inicia el
// cumplimiento, el estado lo escribe el coordinador de reconciliación y las
// acciones explícitas del operador (UpdateStatus).
type UseCase struct {
	txRunner    TxRunner
	orderRepo   repository.DeliveryOrderRepository
	companyRepo repository.CompanyRepository
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	itemRepo    repository.CatalogItemRepository
	calc        *pricing.Calculator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.DeliveryOrderRepository,
	companyRepo repository.CompanyRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	itemRepo repository.CatalogItemRepository,
	calc *pricing.Calculator,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		itemRepo:    itemRepo,
		calc:        calc,
	}
}

// Create valida referencias, recalcula totales de línea y persiste cabecera
// y líneas atómicamente. Estado inicial pending, versión 1.
func (uc *UseCase) Create(ctx context.Context, tc domain.TenantContext, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.checkHeaderRefs(tc, in.Order); err != nil {
		return nil, err
	}
	lines, err := uc.buildLines(tc, in.Items)
	if err != nil {
		return nil, err
	}

	orderDate, _ := time.Parse(dateLayout, in.Order.OrderDate)
	deliveryDate, _ := time.Parse(dateLayout, in.Order.DeliveryDate)
	now := time.Now()
	order := &entity.DeliveryOrder{
		ID:                uuid.New().String(),
		TeamID:            tc.TeamID,
		OrderNumber:       in.Order.OrderNumber,
		SupplierID:        in.Order.SupplierID,
		CustomerID:        in.Order.CustomerID,
		VehicleID:         in.Order.VehicleID,
		MainDriverID:      in.Order.MainDriverID,
		AssistantDriverID: in.Order.AssistantDriverID,
		OrderDate:         orderDate,
		DeliveryDate:      deliveryDate,
		DeliveryAddress:   in.Order.DeliveryAddress,
		Status:            entity.OrderStatusPending,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
		Lines:             lines,
	}
	for i := range order.Lines {
		order.Lines[i].ID = uuid.New().String()
		order.Lines[i].OrderID = order.ID
		order.Lines[i].Position = i
	}

	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.DeliveryOrderRepository) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Update reemplaza cabecera y el set completo de líneas (delete + insert).
// Permitido solo mientras la orden está en pending; la versión enviada debe
// coincidir con la fila (concurrencia optimista, ErrConflict si no).
func (uc *UseCase) Update(ctx context.Context, tc domain.TenantContext, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	current, err := uc.orderRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if !current.Editable() {
		return nil, domain.ErrNotEditable
	}
	if err := uc.checkHeaderRefs(tc, in.Order); err != nil {
		return nil, err
	}
	lines, err := uc.buildLines(tc, in.Items)
	if err != nil {
		return nil, err
	}

	orderDate, _ := time.Parse(dateLayout, in.Order.OrderDate)
	deliveryDate, _ := time.Parse(dateLayout, in.Order.DeliveryDate)
	order := &entity.DeliveryOrder{
		ID:                current.ID,
		TeamID:            tc.TeamID,
		OrderNumber:       in.Order.OrderNumber,
		SupplierID:        in.Order.SupplierID,
		CustomerID:        in.Order.CustomerID,
		VehicleID:         in.Order.VehicleID,
		MainDriverID:      in.Order.MainDriverID,
		AssistantDriverID: in.Order.AssistantDriverID,
		OrderDate:         orderDate,
		DeliveryDate:      deliveryDate,
		DeliveryAddress:   in.Order.DeliveryAddress,
		Status:            current.Status,
		Version:           in.Version,
		CreatedAt:         current.CreatedAt,
		UpdatedAt:         time.Now(),
		Lines:             lines,
	}
	for i := range order.Lines {
		order.Lines[i].ID = uuid.New().String()
		order.Lines[i].OrderID = order.ID
		order.Lines[i].Position = i
	}

	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.DeliveryOrderRepository) error {
		if err := orderRepo.UpdateHeader(order); err != nil {
			return err
		}
		return orderRepo.ReplaceLines(order.ID, order.Lines)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete borra líneas y cabecera. Si una remisión referencia alguna línea,
// la restricción FK aborta todo y retorna ErrReferenced (conflicto duro).
func (uc *UseCase) Delete(ctx context.Context, tc domain.TenantContext, id string) error {
	if !tc.Valid() {
		return domain.ErrUnauthorized
	}
	current, err := uc.orderRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunOrders(ctx, func(orderRepo repository.DeliveryOrderRepository) error {
		return orderRepo.Delete(tc.TeamID, id)
	})
}

// UpdateStatus aplica una transición explícita de operador. El retroceso a
// pending solo procede si ninguna remisión referencia la orden.
func (uc *UseCase) UpdateStatus(ctx context.Context, tc domain.TenantContext, id, status string) (*dto.OrderResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.orderRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	hasRefs, err := uc.orderRepo.HasNoteReferences(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransitionOrder(current.Status, status, hasRefs) {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.orderRepo.UpdateStatus(tc.TeamID, id, status); err != nil {
		return nil, err
	}
	current.Status = status
	return toOrderResponse(current), nil
}

// GetByID obtiene la orden con líneas.
func (uc *UseCase) GetByID(_ context.Context, tc domain.TenantContext, id string) (*dto.OrderResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.orderRepo.GetByID(tc.TeamID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista órdenes del tenant, paginadas.
func (uc *UseCase) List(_ context.Context, tc domain.TenantContext, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.orderRepo.List(tc.TeamID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// PreviewLine expone la cascada de la calculadora al formulario de línea:
// sanitiza las entradas crudas y devuelve valores parseados y cadenas de
// presentación. Si viene ItemID y el precio vacío, usa el precio de lista.
func (uc *UseCase) PreviewLine(_ context.Context, tc domain.TenantContext, in dto.RecalculateRequest) (*dto.RecalculateResponse, error) {
	if !tc.Valid() {
		return nil, domain.ErrUnauthorized
	}
	var res pricing.Result
	if in.ItemID != "" && in.UnitPrice == "" {
		item, err := uc.itemRepo.GetByID(tc.TeamID, in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrInvalidReference
		}
		res = uc.calc.RecalculateWithListPrice(in.Qty, item.Price)
	} else {
		res = uc.calc.Recalculate(in.Qty, in.UnitPrice)
	}
	return &dto.RecalculateResponse{
		Qty:               res.Qty,
		UnitPrice:         res.UnitPrice,
		TotalPrice:        res.Total,
		UnitPriceDisplay:  res.UnitPriceDisplay,
		TotalPriceDisplay: res.TotalDisplay,
	}, nil
}

// checkHeaderRefs valida que proveedor, cliente, vehículo y conductores
// existan y pertenezcan al tenant.
func (uc *UseCase) checkHeaderRefs(tc domain.TenantContext, h dto.OrderHeaderRequest) error {
	if h.SupplierID == h.CustomerID {
		return domain.ErrInvalidInput
	}
	for _, companyID := range []string{h.SupplierID, h.CustomerID} {
		c, err := uc.companyRepo.GetByID(tc.TeamID, companyID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrInvalidReference
		}
	}
	v, err := uc.vehicleRepo.GetByID(tc.TeamID, h.VehicleID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrInvalidReference
	}
	driverIDs := []string{h.MainDriverID}
	if h.AssistantDriverID != "" {
		driverIDs = append(driverIDs, h.AssistantDriverID)
	}
	for _, driverID := range driverIDs {
		d, err := uc.driverRepo.GetByID(tc.TeamID, driverID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrInvalidReference
		}
	}
	return nil
}

// buildLines sanitiza cantidades y precios con la calculadora y re-deriva el
// total de cada línea. Precio vacío → precio de lista del artículo.
func (uc *UseCase) buildLines(tc domain.TenantContext, items []dto.OrderItemRequest) ([]entity.DeliveryOrderLine, error) {
	lines := make([]entity.DeliveryOrderLine, 0, len(items))
	for _, it := range items {
		item, err := uc.itemRepo.GetByID(tc.TeamID, it.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrInvalidReference
		}
		var res pricing.Result
		if it.LoadPerPrice == "" {
			res = uc.calc.RecalculateWithListPrice(it.LoadQty, item.Price)
		} else {
			res = uc.calc.Recalculate(it.LoadQty, it.LoadPerPrice)
		}
		if !res.Qty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, entity.DeliveryOrderLine{
			ItemID:     it.ItemID,
			Quantity:   res.Qty,
			UnitPrice:  res.UnitPrice,
			TotalPrice: res.Total,
		})
	}
	return lines, nil
}

func toOrderResponse(o *entity.DeliveryOrder) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		SupplierID:        o.SupplierID,
		CustomerID:        o.CustomerID,
		VehicleID:         o.VehicleID,
		MainDriverID:      o.MainDriverID,
		AssistantDriverID: o.AssistantDriverID,
		OrderDate:         o.OrderDate.Format(dateLayout),
		DeliveryDate:      o.DeliveryDate.Format(dateLayout),
		DeliveryAddress:   o.DeliveryAddress,
		Status:            o.Status,
		Version:           o.Version,
		Lines:             make([]dto.OrderLineResponse, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:         l.ID,
			ItemID:     l.ItemID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice,
		})
	}
	return out
}
