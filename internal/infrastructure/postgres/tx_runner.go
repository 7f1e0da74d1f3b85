package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/logistica-api/internal/application/billing"
	"github.com/tu-usuario/logistica-api/internal/application/notes"
	"github.com/tu-usuario/logistica-api/internal/application/orders"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos transaccionales de cada caso de uso.
var _ orders.TxRunner = (*TxRunner)(nil)
var _ notes.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrders inicia una transacción con el repositorio de órdenes atado a la tx
// y hace Commit o Rollback.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	orderRepo repository.DeliveryOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDeliveryOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunNotes inicia una transacción con repos de remisiones y órdenes (para la
// reconciliación: persistir la remisión y propagar pending→in_progress es
// todo-o-nada).
func (r *TxRunner) RunNotes(ctx context.Context, fn func(
	noteRepo repository.DeliveryNoteRepository,
	orderRepo repository.DeliveryOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDeliveryNoteRepository(tx), NewDeliveryOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling inicia una transacción con repos de facturación y órdenes (para
// BuildInvoice: consecutivo + cabecera + líneas en una sola tx).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.DeliveryOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx), NewDeliveryOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
