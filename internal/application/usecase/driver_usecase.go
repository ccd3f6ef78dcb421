package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// DriverUseCase casos de uso CRUD para conductores.
type DriverUseCase struct {
	repo repository.DriverRepository
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(repo repository.DriverRepository) *DriverUseCase {
	return &DriverUseCase{repo: repo}
}

// Create registra un nuevo conductor.
func (uc *DriverUseCase) Create(ctx context.Context, in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	driver := &entity.Driver{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// GetByID obtiene un conductor por ID.
func (uc *DriverUseCase) GetByID(ctx context.Context, id string) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, nil
	}
	return toDriverResponse(driver), nil
}

// List lista conductores con paginación.
func (uc *DriverUseCase) List(ctx context.Context, limit, offset int) (*dto.DriverListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDriverResponse(d))
	}
	return &dto.DriverListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	if d == nil {
		return nil
	}
	return &dto.DriverResponse{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     d.Phone,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
	}
}
