package notes

import (
	"context"

	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios de
// remisiones y órdenes atados a la tx. La reconciliación (reemplazo de
// líneas + trinquete de estado sobre las órdenes tocadas) ocurre completa
// dentro de una sola transacción: si fn falla, rollback total y ningún
// estado parcial queda visible.
type TxRunner interface {
	RunNotes(ctx context.Context, fn func(
		noteRepo repository.DeliveryNoteRepository,
		orderRepo repository.DeliveryOrderRepository,
	) error) error
}
