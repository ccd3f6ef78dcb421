package transfer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/fuel"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// FullUpdateInput entrada de la corrección administrativa de un tramo.
type FullUpdateInput struct {
	TransferID    string
	Volume        decimal.Decimal
	DriverID      *string
	TransferredAt *time.Time
	ActorID       string
}

// FullUpdate corrige retroactivamente un tramo del libro: único camino autorizado
// a modificar historia. Corre en una transacción con bloqueo explícito; el tramo
// se toma con FOR UPDATE NOWAIT y la contención se reporta como
// ErrConcurrentConflict (reintentable) en vez de esperar y perder actualizaciones
// contra transferencias concurrentes sobre los mismos lotes.
//
// Los tramos fundacionales (transfer_to_empty) no se corrigen por aquí: su volumen
// es la carga inmutable del lote sembrado.
func (e *Engine) FullUpdate(ctx context.Context, input FullUpdateInput) (*Result, error) {
	if input.TransferID == "" || !input.Volume.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result *Result
	err := e.txRunner.Run(ctx, func(
		lotRepo repository.FuelLotRepository,
		transferRepo repository.InternalTransferRepository,
		saleRepo repository.SaleTransferRepository,
		_ repository.TestingTransferRepository,
	) error {
		row, err := transferRepo.GetForUpdate(ctx, input.TransferID)
		if err != nil {
			return err
		}
		if row == nil {
			return domain.ErrNotFound
		}
		if row.TransferToEmpty {
			return domain.ErrInvalidInput
		}

		fromLot, err := lotRepo.GetForUpdate(ctx, row.FromLotID)
		if err != nil {
			return err
		}
		toLot, err := lotRepo.GetForUpdate(ctx, row.ToLotID)
		if err != nil {
			return err
		}
		if fromLot == nil || toLot == nil {
			return domain.ErrNotFound
		}

		toUnit, err := e.unitRepo.GetByID(ctx, row.ToUnitID)
		if err != nil {
			return err
		}
		if toUnit == nil {
			return domain.ErrNotFound
		}

		oldVolume := row.TransferVolume
		delta := input.Volume.Sub(oldVolume)

		// Revalida origen y capacidad del destino con los remanentes vivos,
		// descontando el volumen anterior del propio tramo.
		srcLedger, err := loadLedger(ctx, fromLot, transferRepo, saleRepo)
		if err != nil {
			return err
		}
		if srcLedger.Remaining().Sub(delta).IsNegative() {
			return domain.ErrInsufficientStock
		}
		destLedger, err := loadLedger(ctx, toLot, transferRepo, saleRepo)
		if err != nil {
			return err
		}
		// La capacidad es de la unidad: el delta se valida contra el remanente
		// vivo de todos los lotes INSTOCK del destino, no solo el lote receptor.
		destLots, err := lotRepo.ListInStockForUpdate(ctx, row.ToUnitID)
		if err != nil {
			return err
		}
		unitRemaining := destLedger.Remaining()
		for _, dl := range destLots {
			if dl.ID == toLot.ID {
				continue
			}
			ledger, err := loadLedger(ctx, dl, transferRepo, saleRepo)
			if err != nil {
				return err
			}
			unitRemaining = unitRemaining.Add(ledger.Remaining())
		}
		if unitRemaining.Add(delta).GreaterThan(toUnit.CapacityLiters) {
			return domain.ErrCapacityExceeded
		}

		// Reescribe el tramo con snapshots recalculados del libro corregido.
		srcUsedAfter := srcLedger.OutboundUsed().Add(delta)
		destInboundAfter := destLedger.InboundAdded().Add(delta)
		row.TransferVolume = input.Volume
		row.FromLotCodeAfter = fuel.SnapshotCode(fromLot.LotCodeCreated, srcUsedAfter, srcLedger.InboundAdded())
		row.ToLotCodeAfter = fuel.SnapshotCode(toLot.LotCodeCreated, destLedger.OutboundUsed(), destInboundAfter)
		if input.DriverID != nil {
			row.DriverID = *input.DriverID
		}
		if input.TransferredAt != nil {
			row.TransferredAt = *input.TransferredAt
		}
		if err := transferRepo.Update(ctx, row); err != nil {
			return err
		}

		// Refresca los caches de ambos lotes desde el libro corregido.
		srcRemaining := srcLedger.Remaining().Sub(delta)
		if err := lotRepo.UpdateDerived(ctx, fromLot.ID, srcUsedAfter, fuel.StatusFor(srcRemaining)); err != nil {
			return err
		}
		destRemaining := destLedger.Remaining().Add(delta)
		if err := lotRepo.UpdateDerived(ctx, toLot.ID, destLedger.OutboundUsed(), fuel.StatusFor(destRemaining)); err != nil {
			return err
		}

		result = &Result{
			Activity: row.Activity,
			Volume:   input.Volume,
			ToLot:    toLot,
			Slices: []Slice{{
				TransferID:       row.ID,
				FromLot:          fromLot,
				Volume:           input.Volume,
				FromLotCodeAfter: row.FromLotCodeAfter,
				ToLotCodeAfter:   row.ToLotCodeAfter,
				OutflowSeq:       row.OutflowSeq,
			}},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
