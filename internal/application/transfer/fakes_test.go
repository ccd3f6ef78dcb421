package transfer_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// memStore implementa en memoria todos los puertos que usa el motor de
// transferencias. Sin semántica de rollback: los tests verifican fallos que el
// motor produce antes de cualquier escritura.
type memStore struct {
	units     map[string]*entity.StorageUnit
	drivers   map[string]*entity.Driver
	days      []*entity.DayReading
	lots      []*entity.FuelLot
	transfers []*entity.InternalTransfer
	sales     []*entity.SaleTransfer
	testings  []*entity.TestingTransfer
	codeSeqs  map[string]int
	unitSeqs  map[string]int64
	outflow   map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		units:    make(map[string]*entity.StorageUnit),
		drivers:  make(map[string]*entity.Driver),
		codeSeqs: make(map[string]int),
		unitSeqs: make(map[string]int64),
		outflow:  make(map[string]int64),
	}
}

// Run ejecuta fn con los repositorios del propio store (sin transacción real).
func (s *memStore) Run(ctx context.Context, fn func(
	lotRepo repository.FuelLotRepository,
	transferRepo repository.InternalTransferRepository,
	saleRepo repository.SaleTransferRepository,
	testingRepo repository.TestingTransferRepository,
) error) error {
	return fn(&memLotRepo{s}, &memTransferRepo{s}, &memSaleRepo{s}, &memTestingRepo{s})
}

// RunLots ejecuta fn con el repositorio de lotes del store.
func (s *memStore) RunLots(ctx context.Context, fn func(lotRepo repository.FuelLotRepository) error) error {
	return fn(&memLotRepo{s})
}

// ── unidades ──────────────────────────────────────────────────────────────────

type memUnitRepo struct{ s *memStore }

func (r *memUnitRepo) Create(_ context.Context, u *entity.StorageUnit) error {
	r.s.units[u.ID] = u
	return nil
}

func (r *memUnitRepo) GetByID(_ context.Context, id string) (*entity.StorageUnit, error) {
	return r.s.units[id], nil
}

func (r *memUnitRepo) GetByCode(_ context.Context, code string) (*entity.StorageUnit, error) {
	for _, u := range r.s.units {
		if u.Code == code {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUnitRepo) List(_ context.Context, _, _ int) ([]*entity.StorageUnit, error) {
	out := make([]*entity.StorageUnit, 0, len(r.s.units))
	for _, u := range r.s.units {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUnitRepo) Update(_ context.Context, u *entity.StorageUnit) error {
	r.s.units[u.ID] = u
	return nil
}

// ── conductores ───────────────────────────────────────────────────────────────

type memDriverRepo struct{ s *memStore }

func (r *memDriverRepo) Create(_ context.Context, d *entity.Driver) error {
	r.s.drivers[d.ID] = d
	return nil
}

func (r *memDriverRepo) GetByID(_ context.Context, id string) (*entity.Driver, error) {
	return r.s.drivers[id], nil
}

func (r *memDriverRepo) List(_ context.Context, _, _ int) ([]*entity.Driver, error) {
	out := make([]*entity.Driver, 0, len(r.s.drivers))
	for _, d := range r.s.drivers {
		out = append(out, d)
	}
	return out, nil
}

// ── lecturas diarias ──────────────────────────────────────────────────────────

type memDayRepo struct{ s *memStore }

func (r *memDayRepo) Create(_ context.Context, d *entity.DayReading) error {
	r.s.days = append(r.s.days, d)
	return nil
}

func (r *memDayRepo) GetByID(_ context.Context, id string) (*entity.DayReading, error) {
	for _, d := range r.s.days {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *memDayRepo) GetByUnitAndDate(_ context.Context, unitID string, date time.Time) (*entity.DayReading, error) {
	day := date.Truncate(24 * time.Hour)
	for _, d := range r.s.days {
		if d.UnitID == unitID && d.Date.Equal(day) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *memDayRepo) SetClosing(_ context.Context, id string, closing decimal.Decimal) error {
	for _, d := range r.s.days {
		if d.ID == id {
			c := closing
			d.ClosingLiters = &c
			return nil
		}
	}
	return nil
}

func (r *memDayRepo) ListByUnit(_ context.Context, unitID string, _, _ int) ([]*entity.DayReading, error) {
	var out []*entity.DayReading
	for _, d := range r.s.days {
		if d.UnitID == unitID {
			out = append(out, d)
		}
	}
	return out, nil
}

// ── lotes ─────────────────────────────────────────────────────────────────────

type memLotRepo struct{ s *memStore }

func (r *memLotRepo) Create(_ context.Context, lot *entity.FuelLot) error {
	r.s.lots = append(r.s.lots, lot)
	return nil
}

func (r *memLotRepo) GetByID(_ context.Context, id string) (*entity.FuelLot, error) {
	for _, l := range r.s.lots {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *memLotRepo) GetForUpdate(ctx context.Context, id string) (*entity.FuelLot, error) {
	return r.GetByID(ctx, id)
}

func (r *memLotRepo) CurrentInStock(_ context.Context, unitID string) (*entity.FuelLot, error) {
	var current *entity.FuelLot
	for _, l := range r.s.lots {
		if l.UnitID != unitID || l.StockStatus != entity.StockStatusInStock {
			continue
		}
		if current == nil || l.UnitSeq > current.UnitSeq {
			current = l
		}
	}
	return current, nil
}

func (r *memLotRepo) CurrentInStockForUpdate(ctx context.Context, unitID string) (*entity.FuelLot, error) {
	return r.CurrentInStock(ctx, unitID)
}

func (r *memLotRepo) ListInStockForUpdate(_ context.Context, unitID string) ([]*entity.FuelLot, error) {
	var out []*entity.FuelLot
	for _, l := range r.s.lots {
		if l.UnitID == unitID && l.StockStatus == entity.StockStatusInStock {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitSeq < out[j].UnitSeq })
	return out, nil
}

func (r *memLotRepo) ListByUnit(_ context.Context, unitID string, _, _ int) ([]*entity.FuelLot, error) {
	var out []*entity.FuelLot
	for _, l := range r.s.lots {
		if l.UnitID == unitID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitSeq < out[j].UnitSeq })
	return out, nil
}

func (r *memLotRepo) UpdateDerived(_ context.Context, lotID string, used decimal.Decimal, status string) error {
	for _, l := range r.s.lots {
		if l.ID == lotID {
			l.UsedLiters = used
			l.StockStatus = status
			return nil
		}
	}
	return nil
}

func (r *memLotRepo) AddTestingLiters(_ context.Context, lotID string, liters decimal.Decimal) error {
	for _, l := range r.s.lots {
		if l.ID == lotID {
			l.CumulativeTestingLiters = l.CumulativeTestingLiters.Add(liters)
			return nil
		}
	}
	return nil
}

func (r *memLotRepo) NextCodeSeq(_ context.Context, unitID string, day time.Time) (int, error) {
	key := unitID + "|" + day.Format("060102")
	r.s.codeSeqs[key]++
	return r.s.codeSeqs[key], nil
}

func (r *memLotRepo) NextUnitSeq(_ context.Context, unitID string) (int64, error) {
	r.s.unitSeqs[unitID]++
	return r.s.unitSeqs[unitID], nil
}

// ── transferencias internas ───────────────────────────────────────────────────

type memTransferRepo struct{ s *memStore }

func (r *memTransferRepo) Create(_ context.Context, t *entity.InternalTransfer) error {
	r.s.transfers = append(r.s.transfers, t)
	return nil
}

func (r *memTransferRepo) GetByID(_ context.Context, id string) (*entity.InternalTransfer, error) {
	for _, t := range r.s.transfers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.InternalTransfer, error) {
	return r.GetByID(ctx, id)
}

func (r *memTransferRepo) Update(_ context.Context, t *entity.InternalTransfer) error {
	for i, existing := range r.s.transfers {
		if existing.ID == t.ID {
			r.s.transfers[i] = t
			return nil
		}
	}
	return nil
}

func (r *memTransferRepo) ListByFromLot(_ context.Context, lotID string) ([]*entity.InternalTransfer, error) {
	var out []*entity.InternalTransfer
	for _, t := range r.s.transfers {
		if t.FromLotID == lotID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTransferRepo) ListByToLot(_ context.Context, lotID string) ([]*entity.InternalTransfer, error) {
	var out []*entity.InternalTransfer
	for _, t := range r.s.transfers {
		if t.ToLotID == lotID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTransferRepo) ListByUnit(_ context.Context, unitID string, _, _ *time.Time, _, _ int) ([]*entity.InternalTransfer, error) {
	var out []*entity.InternalTransfer
	for _, t := range r.s.transfers {
		if t.FromUnitID == unitID || t.ToUnitID == unitID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTransferRepo) NextOutflowSeq(_ context.Context, unitID string) (int64, error) {
	r.s.outflow[unitID]++
	return r.s.outflow[unitID], nil
}

func (r *memTransferRepo) SumOutflowByUnit(_ context.Context, unitID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range r.s.transfers {
		if t.FromUnitID != unitID || t.Activity == entity.ActivityTesting {
			continue
		}
		if t.TransferredAt.Before(from) || !t.TransferredAt.Before(to) {
			continue
		}
		total = total.Add(t.TransferVolume)
	}
	return total, nil
}

// ── ventas ────────────────────────────────────────────────────────────────────

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(_ context.Context, sale *entity.SaleTransfer) error {
	r.s.sales = append(r.s.sales, sale)
	return nil
}

func (r *memSaleRepo) ListByLot(_ context.Context, lotID string) ([]*entity.SaleTransfer, error) {
	var out []*entity.SaleTransfer
	for _, s := range r.s.sales {
		if s.LotID == lotID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListByUnit(_ context.Context, unitID string, _, _ *time.Time, _, _ int) ([]*entity.SaleTransfer, error) {
	var out []*entity.SaleTransfer
	for _, s := range r.s.sales {
		if s.FromUnitID == unitID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) SumByUnit(_ context.Context, unitID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.s.sales {
		if s.FromUnitID != unitID {
			continue
		}
		if s.PerformedAt.Before(from) || !s.PerformedAt.Before(to) {
			continue
		}
		total = total.Add(s.SaleVolumeLiters)
	}
	return total, nil
}

// ── pruebas de calibración ────────────────────────────────────────────────────

type memTestingRepo struct{ s *memStore }

func (r *memTestingRepo) Create(_ context.Context, t *entity.TestingTransfer) error {
	r.s.testings = append(r.s.testings, t)
	return nil
}

func (r *memTestingRepo) ListByLot(_ context.Context, lotID string) ([]*entity.TestingTransfer, error) {
	var out []*entity.TestingTransfer
	for _, t := range r.s.testings {
		if t.LotID == lotID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTestingRepo) SumByUnit(_ context.Context, unitID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range r.s.testings {
		if t.FromUnitID != unitID {
			continue
		}
		if t.PerformedAt.Before(from) || !t.PerformedAt.Before(to) {
			continue
		}
		total = total.Add(t.TransferVolumeLiters)
	}
	return total, nil
}
