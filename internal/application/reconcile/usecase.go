package reconcile

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/fuel"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// UseCase concilia el consumo derivado del libro contra las lecturas físicas del
// medidor de una unidad. Solo detección de deriva: nunca corrige el libro.
// Lecturas de reporte sobre el pool (vista de auditoría, no entrada de control).
type UseCase struct {
	unitRepo     repository.StorageUnitRepository
	transferRepo repository.InternalTransferRepository
	saleRepo     repository.SaleTransferRepository
	testingRepo  repository.TestingTransferRepository
	meterRepo    repository.MeterRepository
	dayRepo      repository.DayReadingRepository
}

// NewUseCase construye el caso de uso de conciliación.
func NewUseCase(
	unitRepo repository.StorageUnitRepository,
	transferRepo repository.InternalTransferRepository,
	saleRepo repository.SaleTransferRepository,
	testingRepo repository.TestingTransferRepository,
	meterRepo repository.MeterRepository,
	dayRepo repository.DayReadingRepository,
) *UseCase {
	return &UseCase{
		unitRepo:     unitRepo,
		transferRepo: transferRepo,
		saleRepo:     saleRepo,
		testingRepo:  testingRepo,
		meterRepo:    meterRepo,
		dayRepo:      dayRepo,
	}
}

// Input ventana de conciliación: un día operativo (lecturas del registro diario)
// o límites explícitos (lecturas del medidor dentro de la ventana).
type Input struct {
	UnitID string
	Date   *time.Time
	From   *time.Time
	To     *time.Time
}

// Report resultado de la conciliación de una unidad en una ventana.
type Report struct {
	UnitID             string
	UnitCode           string
	From               time.Time
	To                 time.Time
	SalesLiters        decimal.Decimal
	TransfersOutLiters decimal.Decimal
	TestingLiters      decimal.Decimal
	ExpectedLiters     decimal.Decimal
	OpeningLiters      *decimal.Decimal
	ClosingLiters      *decimal.Decimal
	ActualLiters       *decimal.Decimal
	DiscrepancyLiters  *decimal.Decimal
	Verdict            string
}

// Reconcile calcula para la ventana:
//
//	esperado    = ventas + transferencias salientes (sin TESTING) + pruebas
//	real        = cierre − apertura del medidor (nil si falta un extremo)
//	discrepancia = real − esperado
//
// El medidor registra toda salida (pruebas incluidas); las entradas no mueven
// el medidor propio de la unidad.
func (uc *UseCase) Reconcile(ctx context.Context, input Input) (*Report, error) {
	if input.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}

	var from, to time.Time
	var opening, closing *decimal.Decimal

	switch {
	case input.Date != nil:
		// Ventana de un día operativo: extremos del registro diario del operador.
		from = input.Date.Truncate(24 * time.Hour)
		to = from.Add(24 * time.Hour)
		dayReading, err := uc.dayRepo.GetByUnitAndDate(ctx, unit.ID, *input.Date)
		if err != nil {
			return nil, err
		}
		if dayReading != nil {
			o := dayReading.OpeningLiters
			opening = &o
			closing = dayReading.ClosingLiters
		}
	case input.From != nil && input.To != nil && input.To.After(*input.From):
		// Límites explícitos: extremos desde las lecturas físicas del medidor.
		from, to = *input.From, *input.To
		first, err := uc.meterRepo.FirstInWindow(ctx, unit.ID, from, to)
		if err != nil {
			return nil, err
		}
		last, err := uc.meterRepo.LastInWindow(ctx, unit.ID, from, to)
		if err != nil {
			return nil, err
		}
		// Se necesitan dos lecturas distintas para derivar consumo.
		if first != nil && last != nil && first.ID != last.ID {
			o, c := first.ReadingLiters, last.ReadingLiters
			opening, closing = &o, &c
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	sales, err := uc.saleRepo.SumByUnit(ctx, unit.ID, from, to)
	if err != nil {
		return nil, err
	}
	transfersOut, err := uc.transferRepo.SumOutflowByUnit(ctx, unit.ID, from, to)
	if err != nil {
		return nil, err
	}
	testing, err := uc.testingRepo.SumByUnit(ctx, unit.ID, from, to)
	if err != nil {
		return nil, err
	}
	expected := sales.Add(transfersOut).Add(testing)

	actual, discrepancy, verdict := fuel.Compare(expected, opening, closing)

	return &Report{
		UnitID:             unit.ID,
		UnitCode:           unit.Code,
		From:               from,
		To:                 to,
		SalesLiters:        sales,
		TransfersOutLiters: transfersOut,
		TestingLiters:      testing,
		ExpectedLiters:     expected,
		OpeningLiters:      opening,
		ClosingLiters:      closing,
		ActualLiters:       actual,
		DiscrepancyLiters:  discrepancy,
		Verdict:            verdict,
	}, nil
}
