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

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un nuevo vehículo. Placa duplicada en el equipo → domain.ErrDuplicate.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, team_id, plate_number, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.TeamID, vehicle.PlateNumber, nullIfEmpty(vehicle.Description),
		vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo del equipo por ID.
func (r *VehicleRepo) GetByID(teamID, id string) (*entity.Vehicle, error) {
	query := `
		SELECT id, team_id, plate_number, COALESCE(description, ''), created_at, updated_at
		FROM vehicles WHERE team_id = $1 AND id = $2`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, teamID, id).Scan(
		&v.ID, &v.TeamID, &v.PlateNumber, &v.Description, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// List lista vehículos del equipo con paginación.
func (r *VehicleRepo) List(teamID string, limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, team_id, plate_number, COALESCE(description, ''), created_at, updated_at
		FROM vehicles WHERE team_id = $1 ORDER BY plate_number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.TeamID, &v.PlateNumber, &v.Description, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
