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

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepo)(nil)

// DeliveryNoteRepo implementación de DeliveryNoteRepository (usable con pool o tx).
type DeliveryNoteRepo struct {
	q Querier
}

// NewDeliveryNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryNoteRepository(q Querier) *DeliveryNoteRepo {
	return &DeliveryNoteRepo{q: q}
}

// Create persiste solo la cabecera. Número duplicado en el equipo → domain.ErrDuplicate.
func (r *DeliveryNoteRepo) Create(note *entity.DeliveryNote) error {
	query := `
		INSERT INTO delivery_notes (id, team_id, note_number, issue_date, remarks, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.TeamID, note.NoteNumber, note.IssueDate, nullIfEmpty(note.Remarks),
		note.Status, note.Version, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery note: %w", err)
	}
	return nil
}

// UpdateHeader actualiza la cabecera con check de versión optimista:
// 0 filas afectadas → domain.ErrConflict.
func (r *DeliveryNoteRepo) UpdateHeader(note *entity.DeliveryNote) error {
	query := `
		UPDATE delivery_notes
		SET note_number = $3, issue_date = $4, remarks = $5, version = version + 1, updated_at = $6
		WHERE team_id = $1 AND id = $2 AND version = $7`
	tag, err := r.q.Exec(context.Background(), query,
		note.TeamID, note.ID, note.NoteNumber, note.IssueDate, nullIfEmpty(note.Remarks),
		note.UpdatedAt, note.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update delivery note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	note.Version++
	return nil
}

// ReplaceLines reemplaza el set completo de líneas (delete + insert).
func (r *DeliveryNoteRepo) ReplaceLines(noteID string, lines []entity.DeliveryNoteLine) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM delivery_note_lines WHERE note_id = $1`, noteID)
	if err != nil {
		return fmt.Errorf("delete delivery note lines: %w", err)
	}
	query := `
		INSERT INTO delivery_note_lines (id, note_id, delivery_order_id, delivery_order_line_id, actual_qty, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range lines {
		_, err := r.q.Exec(context.Background(), query,
			lines[i].ID, noteID, lines[i].DeliveryOrderID, lines[i].DeliveryOrderLineID,
			lines[i].ActualQty, lines[i].Position,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidReference
			}
			return fmt.Errorf("insert delivery note line: %w", err)
		}
	}
	return nil
}

// Delete borra líneas y cabecera de la remisión.
func (r *DeliveryNoteRepo) Delete(teamID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM delivery_note_lines WHERE note_id = $1
		   AND note_id IN (SELECT id FROM delivery_notes WHERE team_id = $2)`, id, teamID)
	if err != nil {
		return fmt.Errorf("delete delivery note lines: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`DELETE FROM delivery_notes WHERE team_id = $1 AND id = $2`, teamID, id)
	if err != nil {
		return fmt.Errorf("delete delivery note: %w", err)
	}
	return nil
}

// GetByID obtiene la remisión con líneas.
func (r *DeliveryNoteRepo) GetByID(teamID, id string) (*entity.DeliveryNote, error) {
	query := `
		SELECT id, team_id, note_number, issue_date, COALESCE(remarks, ''), status, version, created_at, updated_at
		FROM delivery_notes WHERE team_id = $1 AND id = $2`
	var n entity.DeliveryNote
	err := r.q.QueryRow(context.Background(), query, teamID, id).Scan(
		&n.ID, &n.TeamID, &n.NoteNumber, &n.IssueDate, &n.Remarks, &n.Status, &n.Version,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery note: %w", err)
	}

	lq := `
		SELECT id, note_id, delivery_order_id, delivery_order_line_id, actual_qty, position
		FROM delivery_note_lines WHERE note_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), lq, n.ID)
	if err != nil {
		return nil, fmt.Errorf("list delivery note lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.DeliveryNoteLine
		if err := rows.Scan(&l.ID, &l.NoteID, &l.DeliveryOrderID, &l.DeliveryOrderLineID, &l.ActualQty, &l.Position); err != nil {
			return nil, fmt.Errorf("scan delivery note line: %w", err)
		}
		n.Lines = append(n.Lines, l)
	}
	return &n, rows.Err()
}

// List lista remisiones del equipo con paginación (solo cabeceras).
func (r *DeliveryNoteRepo) List(teamID string, limit, offset int) ([]*entity.DeliveryNote, error) {
	query := `
		SELECT id, team_id, note_number, issue_date, COALESCE(remarks, ''), status, version, created_at, updated_at
		FROM delivery_notes WHERE team_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryNote
	for rows.Next() {
		var n entity.DeliveryNote
		if err := rows.Scan(&n.ID, &n.TeamID, &n.NoteNumber, &n.IssueDate, &n.Remarks, &n.Status, &n.Version, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el estado (la validación de transición es del caso de uso).
func (r *DeliveryNoteRepo) UpdateStatus(teamID, id, status string) error {
	query := `
		UPDATE delivery_notes SET status = $3, updated_at = now()
		WHERE team_id = $1 AND id = $2`
	if _, err := r.q.Exec(context.Background(), query, teamID, id, status); err != nil {
		return fmt.Errorf("update delivery note status: %w", err)
	}
	return nil
}
