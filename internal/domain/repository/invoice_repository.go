package repository

import "github.com/tu-usuario/logistica-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas.
type InvoiceRepository interface {
	// Create persiste la cabecera. La restricción única (team_id, invoice_number)
	// serializa consecutivos concurrentes: duplicado → domain.ErrDuplicate y el
	// caso de uso reintenta con el siguiente número.
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	// NextSequence devuelve el siguiente consecutivo del periodo (YYYY/MM)
	// para el tenant: mayor emitido + 1.
	NextSequence(teamID, period string) (int, error)
	GetByID(teamID, id string) (*entity.Invoice, error)
	List(teamID string, limit, offset int) ([]*entity.Invoice, error)
	UpdateStatus(teamID, id, status string) error
}
