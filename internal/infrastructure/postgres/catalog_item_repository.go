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

var _ repository.CatalogItemRepository = (*CatalogItemRepo)(nil)

// CatalogItemRepo implementación de CatalogItemRepository (usable con pool o tx).
type CatalogItemRepo struct {
	q Querier
}

// NewCatalogItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogItemRepository(q Querier) *CatalogItemRepo {
	return &CatalogItemRepo{q: q}
}

// Create persiste un nuevo artículo. Código duplicado en el equipo → domain.ErrDuplicate.
func (r *CatalogItemRepo) Create(item *entity.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (id, team_id, code, name, unit, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TeamID, item.Code, item.Name, item.Unit, item.Price,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo del equipo por ID.
func (r *CatalogItemRepo) GetByID(teamID, id string) (*entity.CatalogItem, error) {
	query := `
		SELECT id, team_id, code, name, unit, price, created_at, updated_at
		FROM catalog_items WHERE team_id = $1 AND id = $2`
	var i entity.CatalogItem
	err := r.q.QueryRow(context.Background(), query, teamID, id).Scan(
		&i.ID, &i.TeamID, &i.Code, &i.Name, &i.Unit, &i.Price, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &i, nil
}

// List lista artículos del equipo con paginación.
func (r *CatalogItemRepo) List(teamID string, limit, offset int) ([]*entity.CatalogItem, error) {
	query := `
		SELECT id, team_id, code, name, unit, price, created_at, updated_at
		FROM catalog_items WHERE team_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		var i entity.CatalogItem
		if err := rows.Scan(&i.ID, &i.TeamID, &i.Code, &i.Name, &i.Unit, &i.Price, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
