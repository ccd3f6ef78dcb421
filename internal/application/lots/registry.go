package lots

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/fuel"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// Registry crea lotes de compra con códigos únicos, ordenados y legibles.
// También lo usa el motor de transferencias (dentro de su propia transacción)
// para sembrar lotes EMPTY_TRANSFER en destinos vacíos.
type Registry struct {
	txRunner TxRunner
	unitRepo repository.StorageUnitRepository
}

// NewRegistry construye el registro de lotes.
func NewRegistry(txRunner TxRunner, unitRepo repository.StorageUnitRepository) *Registry {
	return &Registry{txRunner: txRunner, unitRepo: unitRepo}
}

// CreateLotInput entrada para registrar una compra.
type CreateLotInput struct {
	UnitID       string
	LoadedLiters decimal.Decimal
	LoadTime     time.Time // cero → ahora
	ActorID      string
}

// CreateLot valida capacidad, asigna atómicamente las secuencias por (unidad, fecha)
// y por unidad, genera el código de lote y persiste el lote INSTOCK con used=0.
func (r *Registry) CreateLot(ctx context.Context, input CreateLotInput) (*entity.FuelLot, error) {
	if input.UnitID == "" || !input.LoadedLiters.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	unit, err := r.unitRepo.GetByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if !unit.Active {
		return nil, domain.ErrUnitInactive
	}
	if input.LoadedLiters.GreaterThan(unit.CapacityLiters) {
		return nil, domain.ErrCapacityExceeded
	}

	loadTime := input.LoadTime
	if loadTime.IsZero() {
		loadTime = time.Now()
	}

	var lot *entity.FuelLot
	err = r.txRunner.RunLots(ctx, func(lotRepo repository.FuelLotRepository) error {
		lot, err = BuildLot(ctx, lotRepo, unit, loadTime, input.LoadedLiters, entity.LoadTypePurchase, input.ActorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

// BuildLot asigna secuencias, genera el código base y persiste un lote nuevo con
// los repositorios proporcionados (misma transacción del caller). Compartido entre
// la compra explícita y el sembrado de destinos vacíos del motor de transferencias.
func BuildLot(
	ctx context.Context,
	lotRepo repository.FuelLotRepository,
	unit *entity.StorageUnit,
	loadTime time.Time,
	loadedLiters decimal.Decimal,
	loadType string,
	actorID string,
) (*entity.FuelLot, error) {
	codeSeq, err := lotRepo.NextCodeSeq(ctx, unit.ID, loadTime)
	if err != nil {
		return nil, err
	}
	unitSeq, err := lotRepo.NextUnitSeq(ctx, unit.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lot := &entity.FuelLot{
		ID:                      uuid.New().String(),
		UnitID:                  unit.ID,
		UnitSeq:                 unitSeq,
		LoadedLiters:            loadedLiters,
		UsedLiters:              decimal.Zero,
		CumulativeTestingLiters: decimal.Zero,
		StockStatus:             entity.StockStatusInStock,
		LoadType:                loadType,
		LotCodeCreated:          fuel.BaseCode(unit.Code, loadTime, codeSeq),
		LoadTime:                loadTime,
		CreatedAt:               now,
		CreatedBy:               actorID,
	}
	if err := lotRepo.Create(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}
