package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// StorageUnitUseCase casos de uso CRUD para unidades de almacenamiento.
type StorageUnitUseCase struct {
	repo repository.StorageUnitRepository
}

// NewStorageUnitUseCase construye el caso de uso.
func NewStorageUnitUseCase(repo repository.StorageUnitRepository) *StorageUnitUseCase {
	return &StorageUnitUseCase{repo: repo}
}

func validUnitType(t string) bool {
	switch t {
	case entity.UnitTypeTruck, entity.UnitTypeDatum, entity.UnitTypeDispenser:
		return true
	}
	return false
}

// Create registra una nueva unidad. El código debe ser único: es el prefijo de
// todos los códigos de lote de la unidad.
func (uc *StorageUnitUseCase) Create(ctx context.Context, in dto.CreateStorageUnitRequest) (*dto.StorageUnitResponse, error) {
	if in.Code == "" || !validUnitType(in.Type) || !in.CapacityLiters.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	unit := &entity.StorageUnit{
		ID:             uuid.New().String(),
		Type:           in.Type,
		Code:           in.Code,
		CapacityLiters: in.CapacityLiters,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return toStorageUnitResponse(unit), nil
}

// GetByID obtiene una unidad por ID.
func (uc *StorageUnitUseCase) GetByID(ctx context.Context, id string) (*dto.StorageUnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	return toStorageUnitResponse(unit), nil
}

// Update actualiza una unidad. El tipo es inmutable: cambiarlo rompería la
// semántica de los lotes ya registrados.
func (uc *StorageUnitUseCase) Update(ctx context.Context, id string, in dto.UpdateStorageUnitRequest) (*dto.StorageUnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	if in.Code != nil && *in.Code != unit.Code {
		existing, err := uc.repo.GetByCode(ctx, *in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrInvalidInput
		}
		unit.Code = *in.Code
	}
	if in.CapacityLiters != nil {
		if !in.CapacityLiters.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		unit.CapacityLiters = *in.CapacityLiters
	}
	if in.Active != nil {
		unit.Active = *in.Active
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return toStorageUnitResponse(unit), nil
}

// List lista unidades con paginación.
func (uc *StorageUnitUseCase) List(ctx context.Context, limit, offset int) (*dto.StorageUnitListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageUnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toStorageUnitResponse(u))
	}
	return &dto.StorageUnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toStorageUnitResponse(u *entity.StorageUnit) *dto.StorageUnitResponse {
	if u == nil {
		return nil
	}
	return &dto.StorageUnitResponse{
		ID:             u.ID,
		Type:           u.Type,
		Code:           u.Code,
		CapacityLiters: u.CapacityLiters,
		Active:         u.Active,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
