package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

var _ repository.StorageUnitRepository = (*StorageUnitRepo)(nil)

// StorageUnitRepo implementación del puerto StorageUnitRepository sobre PostgreSQL.
type StorageUnitRepo struct {
	q Querier
}

// NewStorageUnitRepository construye el adaptador de unidades. Pasar pool o tx (Querier).
func NewStorageUnitRepository(q Querier) *StorageUnitRepo {
	return &StorageUnitRepo{q: q}
}

// Create persiste una nueva unidad de almacenamiento.
func (r *StorageUnitRepo) Create(ctx context.Context, unit *entity.StorageUnit) error {
	query := `
		INSERT INTO storage_units (id, unit_type, code, capacity_liters, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		unit.ID, unit.Type, unit.Code, unit.CapacityLiters, unit.Active,
		unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert storage unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID. nil si no existe.
func (r *StorageUnitRepo) GetByID(ctx context.Context, id string) (*entity.StorageUnit, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

// GetByCode obtiene una unidad por código. nil si no existe.
func (r *StorageUnitRepo) GetByCode(ctx context.Context, code string) (*entity.StorageUnit, error) {
	return r.getBy(ctx, `WHERE code = $1`, code)
}

func (r *StorageUnitRepo) getBy(ctx context.Context, where string, arg any) (*entity.StorageUnit, error) {
	query := `
		SELECT id, unit_type, code, capacity_liters, active, created_at, updated_at
		FROM storage_units ` + where
	var u entity.StorageUnit
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Type, &u.Code, &u.CapacityLiters, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage unit: %w", err)
	}
	return &u, nil
}

// List lista unidades con paginación (código ascendente).
func (r *StorageUnitRepo) List(ctx context.Context, limit, offset int) ([]*entity.StorageUnit, error) {
	query := `
		SELECT id, unit_type, code, capacity_liters, active, created_at, updated_at
		FROM storage_units ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storage units: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageUnit
	for rows.Next() {
		var u entity.StorageUnit
		if err := rows.Scan(&u.ID, &u.Type, &u.Code, &u.CapacityLiters, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update actualiza una unidad existente.
func (r *StorageUnitRepo) Update(ctx context.Context, unit *entity.StorageUnit) error {
	query := `
		UPDATE storage_units SET code = $2, capacity_liters = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		unit.ID, unit.Code, unit.CapacityLiters, unit.Active, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update storage unit: %w", err)
	}
	return nil
}
