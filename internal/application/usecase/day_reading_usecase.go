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

// DayReadingUseCase apertura y cierre del día operativo de una unidad.
// La apertura es precondición de las transferencias internas del día.
type DayReadingUseCase struct {
	unitRepo repository.StorageUnitRepository
	dayRepo  repository.DayReadingRepository
}

// NewDayReadingUseCase construye el caso de uso.
func NewDayReadingUseCase(unitRepo repository.StorageUnitRepository, dayRepo repository.DayReadingRepository) *DayReadingUseCase {
	return &DayReadingUseCase{unitRepo: unitRepo, dayRepo: dayRepo}
}

// DayReadingResponse representación HTTP de una lectura diaria.
type DayReadingResponse struct {
	ID            string           `json:"id"`
	UnitID        string           `json:"unit_id"`
	Date          time.Time        `json:"date"`
	TripID        string           `json:"trip_id,omitempty"`
	OpeningLiters decimal.Decimal  `json:"opening_liters"`
	ClosingLiters *decimal.Decimal `json:"closing_liters,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Open registra la lectura de apertura del día para una unidad.
// Una por (unidad, día): el duplicado se rechaza.
func (uc *DayReadingUseCase) Open(ctx context.Context, in dto.RecordDayReadingRequest, actorID string) (*DayReadingResponse, error) {
	if in.UnitID == "" || in.Date.IsZero() || in.OpeningLiters.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.dayRepo.GetByUnitAndDate(ctx, unit.ID, in.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	reading := &entity.DayReading{
		ID:            uuid.New().String(),
		UnitID:        unit.ID,
		Date:          in.Date.Truncate(24 * time.Hour),
		TripID:        in.TripID,
		OpeningLiters: in.OpeningLiters,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     actorID,
	}
	if err := uc.dayRepo.Create(ctx, reading); err != nil {
		return nil, err
	}
	return toDayReadingResponse(reading), nil
}

// Close registra la lectura de cierre. El medidor es acumulativo: el cierre no
// puede ser menor que la apertura.
func (uc *DayReadingUseCase) Close(ctx context.Context, id string, in dto.CloseDayReadingRequest) (*DayReadingResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	reading, err := uc.dayRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, domain.ErrNotFound
	}
	if in.ClosingLiters.LessThan(reading.OpeningLiters) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.dayRepo.SetClosing(ctx, id, in.ClosingLiters); err != nil {
		return nil, err
	}
	closing := in.ClosingLiters
	reading.ClosingLiters = &closing
	reading.UpdatedAt = time.Now()
	return toDayReadingResponse(reading), nil
}

// ListByUnit lista las lecturas diarias de una unidad.
func (uc *DayReadingUseCase) ListByUnit(ctx context.Context, unitID string, limit, offset int) ([]DayReadingResponse, error) {
	if unitID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.dayRepo.ListByUnit(ctx, unitID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]DayReadingResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toDayReadingResponse(r))
	}
	return items, nil
}

func toDayReadingResponse(r *entity.DayReading) *DayReadingResponse {
	return &DayReadingResponse{
		ID:            r.ID,
		UnitID:        r.UnitID,
		Date:          r.Date,
		TripID:        r.TripID,
		OpeningLiters: r.OpeningLiters,
		ClosingLiters: r.ClosingLiters,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
