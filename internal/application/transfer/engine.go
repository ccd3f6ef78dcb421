package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/application/lots"
	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/fuel"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// Engine orquesta transferencias internas, ventas y extracciones de prueba.
// Toda mutación del libro corre dentro de una transacción con bloqueo de fila
// (SELECT FOR UPDATE) sobre cada lote tocado: dos operaciones concurrentes no
// pueden leer el mismo remanente y sobre-comprometer volumen.
type Engine struct {
	txRunner   TxRunner
	unitRepo   repository.StorageUnitRepository
	driverRepo repository.DriverRepository
	dayRepo    repository.DayReadingRepository
}

// NewEngine construye el motor de transferencias.
func NewEngine(
	txRunner TxRunner,
	unitRepo repository.StorageUnitRepository,
	driverRepo repository.DriverRepository,
	dayRepo repository.DayReadingRepository,
) *Engine {
	return &Engine{txRunner: txRunner, unitRepo: unitRepo, driverRepo: driverRepo, dayRepo: dayRepo}
}

// TransferInput entrada para registrar una transferencia, venta o prueba.
// Para actividades internas: ToUnitID. Para ventas: ToVehicle. PerformedAt cero → ahora.
type TransferInput struct {
	Activity    string
	FromUnitID  string
	ToUnitID    string
	ToVehicle   string
	Volume      decimal.Decimal
	DriverID    string
	ActorID     string
	PerformedAt time.Time
}

// Slice es un tramo del reparto FIFO ya persistido.
type Slice struct {
	TransferID       string
	FromLot          *entity.FuelLot
	Volume           decimal.Decimal
	FromLotCodeAfter string
	ToLotCodeAfter   string
	OutflowSeq       int64
}

// Result resultado de una operación del motor.
type Result struct {
	Activity     string
	FromUnit     *entity.StorageUnit
	ToUnit       *entity.StorageUnit
	ToLot        *entity.FuelLot
	SeededNewLot bool
	Volume       decimal.Decimal
	Slices       []Slice
	SaleID       string
	TestingID    string
	LotCodeAfter string // venta/prueba: snapshot del lote consumido
}

// Register valida la entrada y enruta según la actividad:
// interna (FIFO multi-lote), venta (lote único) o prueba (contador paralelo).
func (e *Engine) Register(ctx context.Context, input TransferInput) (*Result, error) {
	if !input.Volume.GreaterThan(decimal.Zero) || input.FromUnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.PerformedAt.IsZero() {
		input.PerformedAt = time.Now()
	}

	fromUnit, err := e.loadActiveUnit(ctx, input.FromUnitID)
	if err != nil {
		return nil, err
	}
	if input.DriverID != "" {
		driver, err := e.driverRepo.GetByID(ctx, input.DriverID)
		if err != nil {
			return nil, err
		}
		if driver == nil {
			return nil, domain.ErrNotFound
		}
	}

	switch input.Activity {
	case entity.ActivityTankerToTanker, entity.ActivityTankerToDatum:
		return e.registerInternal(ctx, fromUnit, input)
	case entity.ActivityTankerToVehicle, entity.ActivityDatumToVehicle:
		return e.registerSale(ctx, fromUnit, input)
	case entity.ActivityTesting:
		return e.registerTesting(ctx, fromUnit, input)
	default:
		return nil, domain.ErrInvalidInput
	}
}

func (e *Engine) loadActiveUnit(ctx context.Context, id string) (*entity.StorageUnit, error) {
	unit, err := e.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if !unit.Active {
		return nil, domain.ErrUnitInactive
	}
	return unit, nil
}

// validateRoute verifica que los tipos de unidad correspondan a la actividad declarada.
func validateRoute(activity string, fromUnit, toUnit *entity.StorageUnit) error {
	switch activity {
	case entity.ActivityTankerToTanker:
		if fromUnit.Type != entity.UnitTypeTruck || toUnit.Type != entity.UnitTypeTruck {
			return domain.ErrInvalidInput
		}
	case entity.ActivityTankerToDatum:
		if fromUnit.Type != entity.UnitTypeTruck || toUnit.Type != entity.UnitTypeDatum {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// registerInternal implementa la transferencia interna con reparto FIFO multi-lote.
//
// Precondición: la unidad de origen debe tener lectura de apertura para la fecha
// (OPENING_MISSING). Dentro de la transacción se bloquean todos los lotes INSTOCK
// del origen y del destino; si el destino no tiene lote y es DATUM o TRUCK se
// siembra uno nuevo (EMPTY_TRANSFER) cargado con el volumen total solicitado,
// marcando transfer_to_empty en cada tramo fundacional.
func (e *Engine) registerInternal(ctx context.Context, fromUnit *entity.StorageUnit, input TransferInput) (*Result, error) {
	if input.ToUnitID == "" || input.ToUnitID == input.FromUnitID {
		return nil, domain.ErrInvalidInput
	}
	toUnit, err := e.loadActiveUnit(ctx, input.ToUnitID)
	if err != nil {
		return nil, err
	}
	if err := validateRoute(input.Activity, fromUnit, toUnit); err != nil {
		return nil, err
	}

	// Precondición de apertura: sin lectura del día no hay transferencia interna.
	opening, err := e.dayRepo.GetByUnitAndDate(ctx, fromUnit.ID, input.PerformedAt)
	if err != nil {
		return nil, err
	}
	if opening == nil {
		return nil, domain.ErrOpeningMissing
	}

	result := &Result{
		Activity: input.Activity,
		FromUnit: fromUnit,
		ToUnit:   toUnit,
		Volume:   input.Volume,
	}

	err = e.txRunner.Run(ctx, func(
		lotRepo repository.FuelLotRepository,
		transferRepo repository.InternalTransferRepository,
		saleRepo repository.SaleTransferRepository,
		_ repository.TestingTransferRepository,
	) error {
		// Bloquea los lotes INSTOCK del origen (orden FIFO) y calcula remanentes vivos.
		sourceLots, err := lotRepo.ListInStockForUpdate(ctx, fromUnit.ID)
		if err != nil {
			return err
		}
		ledgers := make(map[string]fuel.LotLedger, len(sourceLots))
		balances := make([]fuel.LotBalance, 0, len(sourceLots))
		for _, lot := range sourceLots {
			ledger, err := loadLedger(ctx, lot, transferRepo, saleRepo)
			if err != nil {
				return err
			}
			ledgers[lot.ID] = ledger
			balances = append(balances, fuel.LotBalance{Lot: lot, Remaining: ledger.Remaining()})
		}

		allocations, err := fuel.Consume(balances, input.Volume)
		if err != nil {
			return err
		}

		// Resuelve el destino: lote vigente, o sembrado si la unidad está vacía.
		// La capacidad es de la unidad, no del lote: se suma el remanente vivo de
		// todos sus lotes INSTOCK antes de aceptar el volumen entrante.
		destLots, err := lotRepo.ListInStockForUpdate(ctx, toUnit.ID)
		if err != nil {
			return err
		}
		seeded := false
		destUsed := decimal.Zero
		destInbound := decimal.Zero
		var destLot *entity.FuelLot
		if len(destLots) == 0 {
			if !toUnit.CanSeedLot() {
				return domain.ErrNotFound
			}
			if input.Volume.GreaterThan(toUnit.CapacityLiters) {
				return domain.ErrCapacityExceeded
			}
			destLot, err = lots.BuildLot(ctx, lotRepo, toUnit, input.PerformedAt, input.Volume, entity.LoadTypeEmptyTransfer, input.ActorID)
			if err != nil {
				return err
			}
			seeded = true
		} else {
			destLot = destLots[len(destLots)-1] // vigente: mayor unit_seq
			unitRemaining := decimal.Zero
			for _, dl := range destLots {
				ledger, err := loadLedger(ctx, dl, transferRepo, saleRepo)
				if err != nil {
					return err
				}
				unitRemaining = unitRemaining.Add(ledger.Remaining())
				if dl.ID == destLot.ID {
					destUsed = ledger.OutboundUsed()
					destInbound = ledger.InboundAdded()
				}
			}
			if unitRemaining.Add(input.Volume).GreaterThan(toUnit.CapacityLiters) {
				return domain.ErrCapacityExceeded
			}
		}

		// Un tramo del libro por lote consumido, cada uno con sus snapshots y su
		// contador de salida propio.
		for _, alloc := range allocations {
			outflowSeq, err := transferRepo.NextOutflowSeq(ctx, fromUnit.ID)
			if err != nil {
				return err
			}

			ledger := ledgers[alloc.Lot.ID]
			usedAfter := ledger.OutboundUsed().Add(alloc.Volume)
			remainingAfter := ledger.Remaining().Sub(alloc.Volume)
			fromCodeAfter := fuel.SnapshotCode(alloc.Lot.LotCodeCreated, usedAfter, ledger.InboundAdded())

			// El sembrado no cuenta como entrada: su carga ya está en loaded_liters.
			if !seeded {
				destInbound = destInbound.Add(alloc.Volume)
			}
			toCodeAfter := fuel.SnapshotCode(destLot.LotCodeCreated, destUsed, destInbound)

			row := &entity.InternalTransfer{
				ID:               uuid.New().String(),
				FromLotID:        alloc.Lot.ID,
				ToLotID:          destLot.ID,
				FromUnitID:       fromUnit.ID,
				ToUnitID:         toUnit.ID,
				TransferVolume:   alloc.Volume,
				FromLotCodeAfter: fromCodeAfter,
				ToLotCodeAfter:   toCodeAfter,
				TransferToEmpty:  seeded,
				Activity:         input.Activity,
				OutflowSeq:       outflowSeq,
				DriverID:         input.DriverID,
				TransferredAt:    input.PerformedAt,
				CreatedAt:        time.Now(),
				CreatedBy:        input.ActorID,
			}
			if err := transferRepo.Create(ctx, row); err != nil {
				return err
			}

			// Cache del lote origen: vista materializada refrescada en la misma tx.
			if err := lotRepo.UpdateDerived(ctx, alloc.Lot.ID, usedAfter, fuel.StatusFor(remainingAfter)); err != nil {
				return err
			}

			result.Slices = append(result.Slices, Slice{
				TransferID:       row.ID,
				FromLot:          alloc.Lot,
				Volume:           alloc.Volume,
				FromLotCodeAfter: fromCodeAfter,
				ToLotCodeAfter:   toCodeAfter,
				OutflowSeq:       outflowSeq,
			})
		}

		// Refresca el estado cacheado del destino.
		if err := lotRepo.UpdateDerived(ctx, destLot.ID, destUsed, entity.StockStatusInStock); err != nil {
			return err
		}

		result.ToLot = destLot
		result.SeededNewLot = seeded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// registerSale implementa la venta de lote único: valida contra el remanente vivo
// del lote vigente e inserta una fila de venta. Transaccional aunque toque un solo
// lote, para que el cache y la fila del libro queden siempre consistentes.
func (e *Engine) registerSale(ctx context.Context, fromUnit *entity.StorageUnit, input TransferInput) (*Result, error) {
	if input.ToVehicle == "" {
		return nil, domain.ErrInvalidInput
	}

	result := &Result{
		Activity: input.Activity,
		FromUnit: fromUnit,
		Volume:   input.Volume,
	}

	err := e.txRunner.Run(ctx, func(
		lotRepo repository.FuelLotRepository,
		transferRepo repository.InternalTransferRepository,
		saleRepo repository.SaleTransferRepository,
		_ repository.TestingTransferRepository,
	) error {
		lot, err := lotRepo.CurrentInStockForUpdate(ctx, fromUnit.ID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrInsufficientStock
		}
		ledger, err := loadLedger(ctx, lot, transferRepo, saleRepo)
		if err != nil {
			return err
		}
		if ledger.Remaining().LessThan(input.Volume) {
			return domain.ErrInsufficientStock
		}

		usedAfter := ledger.OutboundUsed().Add(input.Volume)
		remainingAfter := ledger.Remaining().Sub(input.Volume)
		codeAfter := fuel.SnapshotCode(lot.LotCodeCreated, usedAfter, ledger.InboundAdded())

		sale := &entity.SaleTransfer{
			ID:               uuid.New().String(),
			LotID:            lot.ID,
			FromUnitID:       fromUnit.ID,
			ToVehicle:        input.ToVehicle,
			SaleVolumeLiters: input.Volume,
			LotCodeAfter:     codeAfter,
			DriverID:         input.DriverID,
			PerformedAt:      input.PerformedAt,
			CreatedAt:        time.Now(),
			CreatedBy:        input.ActorID,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		if err := lotRepo.UpdateDerived(ctx, lot.ID, usedAfter, fuel.StatusFor(remainingAfter)); err != nil {
			return err
		}

		result.SaleID = sale.ID
		result.LotCodeAfter = codeAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// registerTesting implementa la extracción de prueba: neto cero sobre stock
// vendible, acumulada en el contador paralelo del lote y registrada en su propia
// tabla de auditoría. Cuenta en la conciliación contra medidor.
func (e *Engine) registerTesting(ctx context.Context, fromUnit *entity.StorageUnit, input TransferInput) (*Result, error) {
	result := &Result{
		Activity: entity.ActivityTesting,
		FromUnit: fromUnit,
		Volume:   input.Volume,
	}

	err := e.txRunner.Run(ctx, func(
		lotRepo repository.FuelLotRepository,
		transferRepo repository.InternalTransferRepository,
		saleRepo repository.SaleTransferRepository,
		testingRepo repository.TestingTransferRepository,
	) error {
		lot, err := lotRepo.CurrentInStockForUpdate(ctx, fromUnit.ID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		ledger, err := loadLedger(ctx, lot, transferRepo, saleRepo)
		if err != nil {
			return err
		}
		// El snapshot refleja el uso vendible, que la prueba no altera.
		codeAfter := fuel.SnapshotCode(lot.LotCodeCreated, ledger.OutboundUsed(), ledger.InboundAdded())

		row := &entity.TestingTransfer{
			ID:                   uuid.New().String(),
			LotID:                lot.ID,
			FromUnitID:           fromUnit.ID,
			TransferVolumeLiters: input.Volume,
			LotCodeAfter:         codeAfter,
			PerformedAt:          input.PerformedAt,
			CreatedAt:            time.Now(),
			CreatedBy:            input.ActorID,
		}
		if err := testingRepo.Create(ctx, row); err != nil {
			return err
		}
		if err := lotRepo.AddTestingLiters(ctx, lot.ID, input.Volume); err != nil {
			return err
		}

		result.TestingID = row.ID
		result.LotCodeAfter = codeAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// loadLedger carga las filas del libro que afectan a un lote usando los
// repositorios de la transacción en curso.
func loadLedger(
	ctx context.Context,
	lot *entity.FuelLot,
	transferRepo repository.InternalTransferRepository,
	saleRepo repository.SaleTransferRepository,
) (fuel.LotLedger, error) {
	inbound, err := transferRepo.ListByToLot(ctx, lot.ID)
	if err != nil {
		return fuel.LotLedger{}, err
	}
	outgoing, err := transferRepo.ListByFromLot(ctx, lot.ID)
	if err != nil {
		return fuel.LotLedger{}, err
	}
	sales, err := saleRepo.ListByLot(ctx, lot.ID)
	if err != nil {
		return fuel.LotLedger{}, err
	}
	return fuel.LotLedger{Lot: lot, Inbound: inbound, Outgoing: outgoing, Sales: sales}, nil
}
