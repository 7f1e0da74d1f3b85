package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

var _ repository.DeliveryOrderRepository = (*DeliveryOrderRepo)(nil)

// DeliveryOrderRepo implementación de DeliveryOrderRepository (usable con pool o tx).
type DeliveryOrderRepo struct {
	q Querier
}

// NewDeliveryOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryOrderRepository(q Querier) *DeliveryOrderRepo {
	return &DeliveryOrderRepo{q: q}
}

const orderColumns = `id, team_id, order_number, supplier_id, customer_id, vehicle_id,
	       main_driver_id, COALESCE(assistant_driver_id, ''), order_date, delivery_date,
	       delivery_address, status, version, created_at, updated_at`

// Create persiste cabecera y líneas. Número duplicado en el equipo → domain.ErrDuplicate.
func (r *DeliveryOrderRepo) Create(order *entity.DeliveryOrder) error {
	query := `
		INSERT INTO delivery_orders (id, team_id, order_number, supplier_id, customer_id, vehicle_id,
			main_driver_id, assistant_driver_id, order_date, delivery_date, delivery_address,
			status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.TeamID, order.OrderNumber, order.SupplierID, order.CustomerID,
		order.VehicleID, order.MainDriverID, nullIfEmpty(order.AssistantDriverID),
		order.OrderDate, order.DeliveryDate, order.DeliveryAddress,
		order.Status, order.Version, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery order: %w", err)
	}
	return r.insertLines(order.ID, order.Lines)
}

// UpdateHeader actualiza la cabecera con check de versión optimista. La misma
// sentencia exige estado pending: 0 filas afectadas significa versión vieja o
// cumplimiento ya iniciado → domain.ErrConflict.
func (r *DeliveryOrderRepo) UpdateHeader(order *entity.DeliveryOrder) error {
	query := `
		UPDATE delivery_orders
		SET order_number = $3, supplier_id = $4, customer_id = $5, vehicle_id = $6,
		    main_driver_id = $7, assistant_driver_id = $8, order_date = $9, delivery_date = $10,
		    delivery_address = $11, version = version + 1, updated_at = $12
		WHERE team_id = $1 AND id = $2 AND version = $13 AND status = 'pending'`
	tag, err := r.q.Exec(context.Background(), query,
		order.TeamID, order.ID, order.OrderNumber, order.SupplierID, order.CustomerID,
		order.VehicleID, order.MainDriverID, nullIfEmpty(order.AssistantDriverID),
		order.OrderDate, order.DeliveryDate, order.DeliveryAddress,
		order.UpdatedAt, order.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update delivery order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	order.Version++
	return nil
}

// ReplaceLines reemplaza el set completo de líneas (delete + insert).
func (r *DeliveryOrderRepo) ReplaceLines(orderID string, lines []entity.DeliveryOrderLine) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM delivery_order_lines WHERE order_id = $1`, orderID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferenced
		}
		return fmt.Errorf("delete delivery order lines: %w", err)
	}
	return r.insertLines(orderID, lines)
}

func (r *DeliveryOrderRepo) insertLines(orderID string, lines []entity.DeliveryOrderLine) error {
	query := `
		INSERT INTO delivery_order_lines (id, order_id, item_id, quantity, unit_price, total_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range lines {
		_, err := r.q.Exec(context.Background(), query,
			lines[i].ID, orderID, lines[i].ItemID,
			lines[i].Quantity, lines[i].UnitPrice, lines[i].TotalPrice, lines[i].Position,
		)
		if err != nil {
			return fmt.Errorf("insert delivery order line: %w", err)
		}
	}
	return nil
}

// Delete borra líneas y cabecera. Si alguna línea de remisión referencia la
// orden, la FK (RESTRICT) aborta todo → domain.ErrReferenced.
func (r *DeliveryOrderRepo) Delete(teamID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM delivery_order_lines WHERE order_id = $1
		   AND order_id IN (SELECT id FROM delivery_orders WHERE team_id = $2)`, id, teamID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferenced
		}
		return fmt.Errorf("delete delivery order lines: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`DELETE FROM delivery_orders WHERE team_id = $1 AND id = $2`, teamID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferenced
		}
		return fmt.Errorf("delete delivery order: %w", err)
	}
	return nil
}

// GetByID obtiene la orden con líneas.
func (r *DeliveryOrderRepo) GetByID(teamID, id string) (*entity.DeliveryOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM delivery_orders WHERE team_id = $1 AND id = $2`
	var o entity.DeliveryOrder
	err := r.q.QueryRow(context.Background(), query, teamID, id).Scan(
		&o.ID, &o.TeamID, &o.OrderNumber, &o.SupplierID, &o.CustomerID, &o.VehicleID,
		&o.MainDriverID, &o.AssistantDriverID, &o.OrderDate, &o.DeliveryDate,
		&o.DeliveryAddress, &o.Status, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery order: %w", err)
	}
	if err := r.hydrateLines(map[string]*entity.DeliveryOrder{o.ID: &o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByIDs obtiene varias órdenes con líneas. IDs inexistentes o de otro
// tenant simplemente no aparecen en el resultado.
func (r *DeliveryOrderRepo) GetByIDs(teamID string, ids []string) ([]*entity.DeliveryOrder, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + orderColumns + `
		FROM delivery_orders WHERE team_id = $1 AND id = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, teamID, ids)
	if err != nil {
		return nil, fmt.Errorf("get delivery orders: %w", err)
	}
	defer rows.Close()
	list, byID, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.hydrateLines(byID); err != nil {
		return nil, err
	}
	return list, nil
}

// List lista órdenes del equipo con paginación (solo cabeceras).
func (r *DeliveryOrderRepo) List(teamID string, limit, offset int) ([]*entity.DeliveryOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM delivery_orders WHERE team_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list delivery orders: %w", err)
	}
	defer rows.Close()
	list, _, err := scanOrders(rows)
	return list, err
}

// ListWithLines como List pero hidrata las líneas (para exportes).
func (r *DeliveryOrderRepo) ListWithLines(teamID string, limit, offset int) ([]*entity.DeliveryOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM delivery_orders WHERE team_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list delivery orders: %w", err)
	}
	defer rows.Close()
	list, byID, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.hydrateLines(byID); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkInProgress aplica el trinquete pending→in_progress sobre las órdenes
// tocadas por una remisión. Condicional al estado en la misma sentencia:
// repetirlo es inocuo y los row locks serializan remisiones concurrentes.
func (r *DeliveryOrderRepo) MarkInProgress(teamID string, orderIDs []string) error {
	if len(orderIDs) == 0 {
		return nil
	}
	query := `
		UPDATE delivery_orders SET status = 'in_progress', updated_at = now()
		WHERE team_id = $1 AND id = ANY($2) AND status = 'pending'`
	if _, err := r.q.Exec(context.Background(), query, teamID, orderIDs); err != nil {
		return fmt.Errorf("mark orders in progress: %w", err)
	}
	return nil
}

// UpdateStatus escribe el estado (la validación de transición es del caso de uso).
func (r *DeliveryOrderRepo) UpdateStatus(teamID, id, status string) error {
	query := `
		UPDATE delivery_orders SET status = $3, updated_at = now()
		WHERE team_id = $1 AND id = $2`
	if _, err := r.q.Exec(context.Background(), query, teamID, id, status); err != nil {
		return fmt.Errorf("update delivery order status: %w", err)
	}
	return nil
}

// HasNoteReferences indica si alguna línea de remisión referencia la orden.
func (r *DeliveryOrderRepo) HasNoteReferences(teamID, orderID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM delivery_note_lines nl
			JOIN delivery_orders o ON o.id = nl.delivery_order_id
			WHERE o.team_id = $1 AND nl.delivery_order_id = $2
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, teamID, orderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check note references: %w", err)
	}
	return exists, nil
}

func scanOrders(rows pgx.Rows) ([]*entity.DeliveryOrder, map[string]*entity.DeliveryOrder, error) {
	var list []*entity.DeliveryOrder
	byID := make(map[string]*entity.DeliveryOrder)
	for rows.Next() {
		var o entity.DeliveryOrder
		if err := rows.Scan(
			&o.ID, &o.TeamID, &o.OrderNumber, &o.SupplierID, &o.CustomerID, &o.VehicleID,
			&o.MainDriverID, &o.AssistantDriverID, &o.OrderDate, &o.DeliveryDate,
			&o.DeliveryAddress, &o.Status, &o.Version, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("scan delivery order: %w", err)
		}
		list = append(list, &o)
		byID[o.ID] = &o
	}
	return list, byID, rows.Err()
}

// hydrateLines carga las líneas de todas las órdenes del map en una sola consulta.
func (r *DeliveryOrderRepo) hydrateLines(byID map[string]*entity.DeliveryOrder) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	query := `
		SELECT id, order_id, item_id, quantity, unit_price, total_price, position
		FROM delivery_order_lines WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("list delivery order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.DeliveryOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.Quantity, &l.UnitPrice, &l.TotalPrice, &l.Position); err != nil {
			return fmt.Errorf("scan delivery order line: %w", err)
		}
		if o, ok := byID[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return rows.Err()
}
