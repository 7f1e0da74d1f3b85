package orders

import (
	"context"

	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de
// órdenes atado a la tx. Si fn retorna error se hace rollback completo.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(orderRepo repository.DeliveryOrderRepository) error) error
}
