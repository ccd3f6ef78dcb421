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

// MeterUseCase registro y consulta de lecturas físicas de medidor.
// Las lecturas son inmutables: verdad de terreno de la conciliación.
type MeterUseCase struct {
	unitRepo  repository.StorageUnitRepository
	meterRepo repository.MeterRepository
}

// NewMeterUseCase construye el caso de uso.
func NewMeterUseCase(unitRepo repository.StorageUnitRepository, meterRepo repository.MeterRepository) *MeterUseCase {
	return &MeterUseCase{unitRepo: unitRepo, meterRepo: meterRepo}
}

// MeterResponse representación HTTP de una lectura de medidor.
type MeterResponse struct {
	ID            string          `json:"id"`
	UnitID        string          `json:"unit_id"`
	ReadingAt     time.Time       `json:"reading_at"`
	ReadingLiters decimal.Decimal `json:"reading_liters"`
	Source        string          `json:"source,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Record registra una lectura de medidor para una unidad existente.
// El medidor es acumulativo: la lectura debe ser no negativa.
func (uc *MeterUseCase) Record(ctx context.Context, in dto.RecordMeterRequest, actorID string) (*MeterResponse, error) {
	if in.UnitID == "" || in.ReadingAt.IsZero() || in.ReadingLiters.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}

	snapshot := &entity.MeterSnapshot{
		ID:            uuid.New().String(),
		UnitID:        unit.ID,
		ReadingAt:     in.ReadingAt,
		ReadingLiters: in.ReadingLiters,
		Source:        in.Source,
		CreatedAt:     time.Now(),
		CreatedBy:     actorID,
	}
	if err := uc.meterRepo.Create(ctx, snapshot); err != nil {
		return nil, err
	}
	return toMeterResponse(snapshot), nil
}

// ListByUnit lista lecturas de una unidad, opcionalmente acotadas por ventana.
func (uc *MeterUseCase) ListByUnit(ctx context.Context, unitID string, from, to *time.Time, limit, offset int) ([]MeterResponse, error) {
	if unitID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.meterRepo.ListByUnit(ctx, unitID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]MeterResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toMeterResponse(s))
	}
	return items, nil
}

func toMeterResponse(s *entity.MeterSnapshot) *MeterResponse {
	return &MeterResponse{
		ID:            s.ID,
		UnitID:        s.UnitID,
		ReadingAt:     s.ReadingAt,
		ReadingLiters: s.ReadingLiters,
		Source:        s.Source,
		CreatedAt:     s.CreatedAt,
	}
}
