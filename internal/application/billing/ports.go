package billing

import (
	"context"

	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios de
// facturación y órdenes atados a la tx.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		orderRepo repository.DeliveryOrderRepository,
	) error) error
}
