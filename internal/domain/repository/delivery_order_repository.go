package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// DeliveryOrderRepository define el puerto de persistencia para órdenes de entrega.
type DeliveryOrderRepository interface {
	// Create persiste cabecera y líneas. Número duplicado → domain.ErrDuplicate.
	Create(order *entity.DeliveryOrder) error
	// UpdateHeader actualiza la cabecera con check de versión optimista:
	// si la versión en fila no coincide retorna domain.ErrConflict.
	// En éxito incrementa order.Version.
	UpdateHeader(order *entity.DeliveryOrder) error
	// ReplaceLines reemplaza el set completo de líneas (delete + insert).
	ReplaceLines(orderID string, lines []entity.DeliveryOrderLine) error
	// Delete borra líneas y cabecera. Si alguna línea de remisión referencia
	// la orden, la restricción FK aborta y retorna domain.ErrReferenced.
	Delete(teamID, id string) error
	GetByID(teamID, id string) (*entity.DeliveryOrder, error)
	GetByIDs(teamID string, ids []string) ([]*entity.DeliveryOrder, error)
	List(teamID string, limit, offset int) ([]*entity.DeliveryOrder, error)
	// ListWithLines como List pero hidrata las líneas (exportes).
	ListWithLines(teamID string, limit, offset int) ([]*entity.DeliveryOrder, error)
	// MarkInProgress aplica el trinquete pending→in_progress sobre el set de
	// órdenes tocadas por una remisión. Condicional al estado pending en la
	// misma sentencia: idempotente y serializado por los row locks.
	MarkInProgress(teamID string, orderIDs []string) error
	UpdateStatus(teamID, id, status string) error
	// HasNoteReferences indica si alguna línea de remisión referencia la orden.
	HasNoteReferences(teamID, orderID string) (bool, error)
}
