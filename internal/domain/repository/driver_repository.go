package repository

import (
	"context"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// DriverRepository define el puerto de persistencia para conductores (atribución opcional).
type DriverRepository interface {
	Create(ctx context.Context, driver *entity.Driver) error
	GetByID(ctx context.Context, id string) (*entity.Driver, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Driver, error)
}
