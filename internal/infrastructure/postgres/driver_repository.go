package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo implementación del puerto DriverRepository sobre PostgreSQL.
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el adaptador de conductores.
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

// Create persiste un nuevo conductor.
func (r *DriverRepo) Create(ctx context.Context, driver *entity.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		driver.ID, driver.Name, driver.Phone, driver.Active, driver.CreatedAt, driver.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// GetByID obtiene un conductor por ID. nil si no existe.
func (r *DriverRepo) GetByID(ctx context.Context, id string) (*entity.Driver, error) {
	query := `
		SELECT id, name, phone, active, created_at, updated_at
		FROM drivers WHERE id = $1`
	var d entity.Driver
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Phone, &d.Active, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}

// List lista conductores con paginación.
func (r *DriverRepo) List(ctx context.Context, limit, offset int) ([]*entity.Driver, error) {
	query := `
		SELECT id, name, phone, active, created_at, updated_at
		FROM drivers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
