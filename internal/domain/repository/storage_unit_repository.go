package repository

import (
	"context"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// StorageUnitRepository define el puerto de persistencia para unidades de almacenamiento.
// El núcleo de inventario solo lee; Create/Update sirven al CRUD administrativo.
type StorageUnitRepository interface {
	Create(ctx context.Context, unit *entity.StorageUnit) error
	GetByID(ctx context.Context, id string) (*entity.StorageUnit, error)
	GetByCode(ctx context.Context, code string) (*entity.StorageUnit, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StorageUnit, error)
	Update(ctx context.Context, unit *entity.StorageUnit) error
}
