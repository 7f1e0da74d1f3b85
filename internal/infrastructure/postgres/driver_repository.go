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

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo implementación de DriverRepository (usable con pool o tx).
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

// Create persiste un nuevo conductor.
func (r *DriverRepo) Create(driver *entity.Driver) error {
	query := `
		INSERT INTO drivers (id, team_id, name, license_number, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		driver.ID, driver.TeamID, driver.Name, nullIfEmpty(driver.LicenseNumber),
		nullIfEmpty(driver.Phone), driver.CreatedAt, driver.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// GetByID obtiene un conductor del equipo por ID.
func (r *DriverRepo) GetByID(teamID, id string) (*entity.Driver, error) {
	query := `
		SELECT id, team_id, name, COALESCE(license_number, ''), COALESCE(phone, ''), created_at, updated_at
		FROM drivers WHERE team_id = $1 AND id = $2`
	var d entity.Driver
	err := r.q.QueryRow(context.Background(), query, teamID, id).Scan(
		&d.ID, &d.TeamID, &d.Name, &d.LicenseNumber, &d.Phone, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}

// List lista conductores del equipo con paginación.
func (r *DriverRepo) List(teamID string, limit, offset int) ([]*entity.Driver, error) {
	query := `
		SELECT id, team_id, name, COALESCE(license_number, ''), COALESCE(phone, ''), created_at, updated_at
		FROM drivers WHERE team_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.TeamID, &d.Name, &d.LicenseNumber, &d.Phone, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
