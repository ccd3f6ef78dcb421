package usecase

import (
	"context"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/fuel"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// LotQueryUseCase lecturas de lotes con remanente vivo derivado del libro.
// Los campos cacheados del lote no se devuelven como remanente: cada respuesta
// recalcula desde las filas de transferencias y ventas.
type LotQueryUseCase struct {
	lotRepo      repository.FuelLotRepository
	transferRepo repository.InternalTransferRepository
	saleRepo     repository.SaleTransferRepository
}

// NewLotQueryUseCase construye el caso de uso de consulta de lotes.
func NewLotQueryUseCase(
	lotRepo repository.FuelLotRepository,
	transferRepo repository.InternalTransferRepository,
	saleRepo repository.SaleTransferRepository,
) *LotQueryUseCase {
	return &LotQueryUseCase{lotRepo: lotRepo, transferRepo: transferRepo, saleRepo: saleRepo}
}

// GetByID obtiene un lote con su remanente vivo.
func (uc *LotQueryUseCase) GetByID(ctx context.Context, id string) (*dto.LotResponse, error) {
	lot, err := uc.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}
	return uc.toLotResponse(ctx, lot)
}

// ListByUnit lista los lotes de una unidad (FIFO: UnitSeq ascendente) con
// remanente vivo por lote.
func (uc *LotQueryUseCase) ListByUnit(ctx context.Context, unitID string, limit, offset int) (*dto.LotListResponse, error) {
	if unitID == "" {
		return nil, domain.ErrInvalidInput
	}
	lots, err := uc.lotRepo.ListByUnit(ctx, unitID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		resp, err := uc.toLotResponse(ctx, lot)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.LotListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Current devuelve el lote vigente (INSTOCK de mayor UnitSeq) de una unidad.
// nil si la unidad está vacía.
func (uc *LotQueryUseCase) Current(ctx context.Context, unitID string) (*dto.LotResponse, error) {
	if unitID == "" {
		return nil, domain.ErrInvalidInput
	}
	lot, err := uc.lotRepo.CurrentInStock(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}
	return uc.toLotResponse(ctx, lot)
}

func (uc *LotQueryUseCase) toLotResponse(ctx context.Context, lot *entity.FuelLot) (*dto.LotResponse, error) {
	inbound, err := uc.transferRepo.ListByToLot(ctx, lot.ID)
	if err != nil {
		return nil, err
	}
	outgoing, err := uc.transferRepo.ListByFromLot(ctx, lot.ID)
	if err != nil {
		return nil, err
	}
	sales, err := uc.saleRepo.ListByLot(ctx, lot.ID)
	if err != nil {
		return nil, err
	}
	ledger := fuel.LotLedger{Lot: lot, Inbound: inbound, Outgoing: outgoing, Sales: sales}
	return &dto.LotResponse{
		ID:                      lot.ID,
		UnitID:                  lot.UnitID,
		UnitSeq:                 lot.UnitSeq,
		LotCode:                 lot.LotCodeCreated,
		LoadedLiters:            lot.LoadedLiters,
		UsedLiters:              ledger.OutboundUsed(),
		RemainingLiters:         ledger.Remaining(),
		CumulativeTestingLiters: lot.CumulativeTestingLiters,
		StockStatus:             lot.StockStatus,
		LoadType:                lot.LoadType,
		LoadTime:                lot.LoadTime,
		CreatedAt:               lot.CreatedAt,
	}, nil
}
