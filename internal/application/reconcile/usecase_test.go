package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrosur/fuelops-api/internal/application/reconcile"
	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/fuel"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de conciliación contra stubs con sumas fijas: el caso de uso solo debe
// componer ventana, sumas del libro y comparación; la aritmética vive en
// fuel.Compare y aquí se verifica la composición.
// ──────────────────────────────────────────────────────────────────────────────

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func lit(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func litPtr(n int64) *decimal.Decimal {
	v := decimal.NewFromInt(n)
	return &v
}

type stubUnitRepo struct{ unit *entity.StorageUnit }

func (r *stubUnitRepo) Create(_ context.Context, _ *entity.StorageUnit) error { return nil }
func (r *stubUnitRepo) GetByID(_ context.Context, id string) (*entity.StorageUnit, error) {
	if r.unit != nil && r.unit.ID == id {
		return r.unit, nil
	}
	return nil, nil
}
func (r *stubUnitRepo) GetByCode(_ context.Context, _ string) (*entity.StorageUnit, error) {
	return nil, nil
}
func (r *stubUnitRepo) List(_ context.Context, _, _ int) ([]*entity.StorageUnit, error) {
	return nil, nil
}
func (r *stubUnitRepo) Update(_ context.Context, _ *entity.StorageUnit) error { return nil }

type stubTransferRepo struct{ outflow decimal.Decimal }

func (r *stubTransferRepo) Create(_ context.Context, _ *entity.InternalTransfer) error { return nil }
func (r *stubTransferRepo) GetByID(_ context.Context, _ string) (*entity.InternalTransfer, error) {
	return nil, nil
}
func (r *stubTransferRepo) GetForUpdate(_ context.Context, _ string) (*entity.InternalTransfer, error) {
	return nil, nil
}
func (r *stubTransferRepo) Update(_ context.Context, _ *entity.InternalTransfer) error { return nil }
func (r *stubTransferRepo) ListByFromLot(_ context.Context, _ string) ([]*entity.InternalTransfer, error) {
	return nil, nil
}
func (r *stubTransferRepo) ListByToLot(_ context.Context, _ string) ([]*entity.InternalTransfer, error) {
	return nil, nil
}
func (r *stubTransferRepo) ListByUnit(_ context.Context, _ string, _, _ *time.Time, _, _ int) ([]*entity.InternalTransfer, error) {
	return nil, nil
}
func (r *stubTransferRepo) NextOutflowSeq(_ context.Context, _ string) (int64, error) { return 0, nil }
func (r *stubTransferRepo) SumOutflowByUnit(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	return r.outflow, nil
}

type stubSaleRepo struct{ sum decimal.Decimal }

func (r *stubSaleRepo) Create(_ context.Context, _ *entity.SaleTransfer) error { return nil }
func (r *stubSaleRepo) ListByLot(_ context.Context, _ string) ([]*entity.SaleTransfer, error) {
	return nil, nil
}
func (r *stubSaleRepo) ListByUnit(_ context.Context, _ string, _, _ *time.Time, _, _ int) ([]*entity.SaleTransfer, error) {
	return nil, nil
}
func (r *stubSaleRepo) SumByUnit(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	return r.sum, nil
}

type stubTestingRepo struct{ sum decimal.Decimal }

func (r *stubTestingRepo) Create(_ context.Context, _ *entity.TestingTransfer) error { return nil }
func (r *stubTestingRepo) ListByLot(_ context.Context, _ string) ([]*entity.TestingTransfer, error) {
	return nil, nil
}
func (r *stubTestingRepo) SumByUnit(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	return r.sum, nil
}

type stubMeterRepo struct {
	first *entity.MeterSnapshot
	last  *entity.MeterSnapshot
}

func (r *stubMeterRepo) Create(_ context.Context, _ *entity.MeterSnapshot) error { return nil }
func (r *stubMeterRepo) ListByUnit(_ context.Context, _ string, _, _ *time.Time, _, _ int) ([]*entity.MeterSnapshot, error) {
	return nil, nil
}
func (r *stubMeterRepo) FirstInWindow(_ context.Context, _ string, _, _ time.Time) (*entity.MeterSnapshot, error) {
	return r.first, nil
}
func (r *stubMeterRepo) LastInWindow(_ context.Context, _ string, _, _ time.Time) (*entity.MeterSnapshot, error) {
	return r.last, nil
}

type stubDayRepo struct{ reading *entity.DayReading }

func (r *stubDayRepo) Create(_ context.Context, _ *entity.DayReading) error { return nil }
func (r *stubDayRepo) GetByID(_ context.Context, _ string) (*entity.DayReading, error) {
	return nil, nil
}
func (r *stubDayRepo) GetByUnitAndDate(_ context.Context, _ string, _ time.Time) (*entity.DayReading, error) {
	return r.reading, nil
}
func (r *stubDayRepo) SetClosing(_ context.Context, _ string, _ decimal.Decimal) error { return nil }
func (r *stubDayRepo) ListByUnit(_ context.Context, _ string, _, _ int) ([]*entity.DayReading, error) {
	return nil, nil
}

type stubs struct {
	unit    *stubUnitRepo
	tr      *stubTransferRepo
	sale    *stubSaleRepo
	testing *stubTestingRepo
	meter   *stubMeterRepo
	day     *stubDayRepo
}

func newStubs() *stubs {
	return &stubs{
		unit: &stubUnitRepo{unit: &entity.StorageUnit{
			ID:   "t1",
			Type: entity.UnitTypeTruck,
			Code: "T1",
		}},
		tr:      &stubTransferRepo{outflow: decimal.Zero},
		sale:    &stubSaleRepo{sum: decimal.Zero},
		testing: &stubTestingRepo{sum: decimal.Zero},
		meter:   &stubMeterRepo{},
		day:     &stubDayRepo{},
	}
}

func (s *stubs) useCase() *reconcile.UseCase {
	return reconcile.NewUseCase(s.unit, s.tr, s.sale, s.testing, s.meter, s.day)
}

// Día cuadrado: ventas 500 + trasvases 290 + pruebas 10 = 800 esperados;
// medidor 1000 → 1800 = 800 reales.
func TestReconcile_DiaCuadrado(t *testing.T) {
	s := newStubs()
	s.sale.sum = lit(500)
	s.tr.outflow = lit(290)
	s.testing.sum = lit(10)
	s.day.reading = &entity.DayReading{
		UnitID:        "t1",
		Date:          day,
		OpeningLiters: lit(1000),
		ClosingLiters: litPtr(1800),
	}

	report, err := s.useCase().Reconcile(context.Background(), reconcile.Input{UnitID: "t1", Date: &day})
	require.NoError(t, err)

	assert.True(t, report.ExpectedLiters.Equal(lit(800)))
	require.NotNil(t, report.ActualLiters)
	assert.True(t, report.ActualLiters.Equal(lit(800)))
	require.NotNil(t, report.DiscrepancyLiters)
	assert.True(t, report.DiscrepancyLiters.IsZero())
	assert.Equal(t, fuel.VerdictMatches, report.Verdict)
	assert.Equal(t, "T1", report.UnitCode)
}

// El medidor registra 10 L más de lo anotado: posible despacho sin registrar.
func TestReconcile_MedidorSobreLibro(t *testing.T) {
	s := newStubs()
	s.sale.sum = lit(800)
	s.day.reading = &entity.DayReading{
		UnitID:        "t1",
		Date:          day,
		OpeningLiters: lit(1000),
		ClosingLiters: litPtr(1810),
	}

	report, err := s.useCase().Reconcile(context.Background(), reconcile.Input{UnitID: "t1", Date: &day})
	require.NoError(t, err)

	require.NotNil(t, report.DiscrepancyLiters)
	assert.True(t, report.DiscrepancyLiters.Equal(lit(10)))
	assert.Equal(t, fuel.VerdictMeterOver, report.Verdict)
}

// Sin lectura de cierre no hay conclusión posible.
func TestReconcile_SinCierre(t *testing.T) {
	s := newStubs()
	s.sale.sum = lit(800)
	s.day.reading = &entity.DayReading{
		UnitID:        "t1",
		Date:          day,
		OpeningLiters: lit(1000),
	}

	report, err := s.useCase().Reconcile(context.Background(), reconcile.Input{UnitID: "t1", Date: &day})
	require.NoError(t, err)

	assert.Nil(t, report.ActualLiters)
	assert.Nil(t, report.DiscrepancyLiters)
	assert.Equal(t, fuel.VerdictNoMeterData, report.Verdict)
	assert.True(t, report.ExpectedLiters.Equal(lit(800)), "lo esperado se reporta aunque falte el medidor")
}

// Ventana explícita: extremos desde las lecturas físicas del medidor.
func TestReconcile_VentanaExplicitaConMedidor(t *testing.T) {
	s := newStubs()
	s.sale.sum = lit(800)
	s.meter.first = &entity.MeterSnapshot{ID: "m1", UnitID: "t1", ReadingLiters: lit(1000)}
	s.meter.last = &entity.MeterSnapshot{ID: "m2", UnitID: "t1", ReadingLiters: lit(1790)}

	from := day
	to := day.Add(48 * time.Hour)
	report, err := s.useCase().Reconcile(context.Background(), reconcile.Input{UnitID: "t1", From: &from, To: &to})
	require.NoError(t, err)

	require.NotNil(t, report.DiscrepancyLiters)
	assert.True(t, report.DiscrepancyLiters.Equal(lit(-10)))
	assert.Equal(t, fuel.VerdictMeterUnder, report.Verdict)
}

// Una sola lectura en la ventana no permite derivar consumo.
func TestReconcile_LecturaUnicaEnVentana(t *testing.T) {
	s := newStubs()
	only := &entity.MeterSnapshot{ID: "m1", UnitID: "t1", ReadingLiters: lit(1000)}
	s.meter.first = only
	s.meter.last = only

	from := day
	to := day.Add(24 * time.Hour)
	report, err := s.useCase().Reconcile(context.Background(), reconcile.Input{UnitID: "t1", From: &from, To: &to})
	require.NoError(t, err)

	assert.Equal(t, fuel.VerdictNoMeterData, report.Verdict)
}

func TestReconcile_UnidadInexistente(t *testing.T) {
	s := newStubs()
	_, err := s.useCase().Reconcile(context.Background(), reconcile.Input{UnitID: "nope", Date: &day})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcile_SinVentana(t *testing.T) {
	s := newStubs()
	_, err := s.useCase().Reconcile(context.Background(), reconcile.Input{UnitID: "t1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
