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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera. La restricción única (team_id, invoice_number)
// serializa consecutivos concurrentes: duplicado → domain.ErrDuplicate y el
// caso de uso reintenta con el siguiente número.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, team_id, invoice_number, period, sequence, company_id,
			issue_date, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.TeamID, invoice.InvoiceNumber, invoice.Period, invoice.Sequence,
		invoice.CompanyID, invoice.IssueDate, invoice.Status, invoice.TotalAmount,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea facturada.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, delivery_order_id, delivery_order_line_id,
			description, quantity, unit_price, total_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.DeliveryOrderID, line.DeliveryOrderLineID,
		line.Description, line.Quantity, line.UnitPrice, line.TotalPrice, line.Position,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// NextSequence devuelve el siguiente consecutivo del periodo para el tenant:
// mayor emitido + 1. La unicidad real la garantiza la constraint sobre
// invoice_number; esto solo propone el candidato.
func (r *InvoiceRepo) NextSequence(teamID, period string) (int, error) {
	query := `
		SELECT COALESCE(MAX(sequence), 0) + 1
		FROM invoices WHERE team_id = $1 AND period = $2`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, teamID, period).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return seq, nil
}

// GetByID obtiene la factura con líneas.
func (r *InvoiceRepo) GetByID(teamID, id string) (*entity.Invoice, error) {
	query := `
		SELECT id, team_id, invoice_number, period, sequence, company_id,
		       issue_date, status, total_amount, created_at, updated_at
		FROM invoices WHERE team_id = $1 AND id = $2`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, teamID, id).Scan(
		&inv.ID, &inv.TeamID, &inv.InvoiceNumber, &inv.Period, &inv.Sequence, &inv.CompanyID,
		&inv.IssueDate, &inv.Status, &inv.TotalAmount, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	lq := `
		SELECT id, invoice_id, delivery_order_id, delivery_order_line_id,
		       description, quantity, unit_price, total_price, position
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), lq, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.DeliveryOrderID, &l.DeliveryOrderLineID,
			&l.Description, &l.Quantity, &l.UnitPrice, &l.TotalPrice, &l.Position); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		inv.Lines = append(inv.Lines, l)
	}
	return &inv, rows.Err()
}

// List lista facturas del equipo con paginación (solo cabeceras).
func (r *InvoiceRepo) List(teamID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, team_id, invoice_number, period, sequence, company_id,
		       issue_date, status, total_amount, created_at, updated_at
		FROM invoices WHERE team_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.TeamID, &inv.InvoiceNumber, &inv.Period, &inv.Sequence,
			&inv.CompanyID, &inv.IssueDate, &inv.Status, &inv.TotalAmount, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el estado (la validación de transición es del caso de uso).
func (r *InvoiceRepo) UpdateStatus(teamID, id, status string) error {
	query := `
		UPDATE invoices SET status = $3, updated_at = now()
		WHERE team_id = $1 AND id = $2`
	if _, err := r.q.Exec(context.Background(), query, teamID, id, status); err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}
