package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

var _ repository.FuelLotRepository = (*FuelLotRepo)(nil)

// FuelLotRepo implementación del puerto FuelLotRepository sobre PostgreSQL.
// Las variantes ForUpdate se usan solo dentro de una transacción (TxRunner).
type FuelLotRepo struct {
	q Querier
}

// NewFuelLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewFuelLotRepository(q Querier) *FuelLotRepo {
	return &FuelLotRepo{q: q}
}

const fuelLotColumns = `
	id, unit_id, unit_seq, loaded_liters, used_liters, cumulative_testing_liters,
	stock_status, load_type, lot_code_created, load_time, created_at, created_by`

func scanFuelLot(row pgx.Row) (*entity.FuelLot, error) {
	var l entity.FuelLot
	err := row.Scan(
		&l.ID, &l.UnitID, &l.UnitSeq, &l.LoadedLiters, &l.UsedLiters, &l.CumulativeTestingLiters,
		&l.StockStatus, &l.LoadType, &l.LotCodeCreated, &l.LoadTime, &l.CreatedAt, &l.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote nuevo.
func (r *FuelLotRepo) Create(ctx context.Context, lot *entity.FuelLot) error {
	query := `
		INSERT INTO fuel_lots (` + fuelLotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.UnitID, lot.UnitSeq, lot.LoadedLiters, lot.UsedLiters, lot.CumulativeTestingLiters,
		lot.StockStatus, lot.LoadType, lot.LotCodeCreated, lot.LoadTime, lot.CreatedAt, lot.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert fuel lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. nil si no existe.
func (r *FuelLotRepo) GetByID(ctx context.Context, id string) (*entity.FuelLot, error) {
	return r.getByID(ctx, id, "")
}

// GetForUpdate obtiene un lote por ID bloqueando la fila (SELECT FOR UPDATE).
func (r *FuelLotRepo) GetForUpdate(ctx context.Context, id string) (*entity.FuelLot, error) {
	return r.getByID(ctx, id, " FOR UPDATE")
}

func (r *FuelLotRepo) getByID(ctx context.Context, id, lock string) (*entity.FuelLot, error) {
	query := `SELECT ` + fuelLotColumns + ` FROM fuel_lots WHERE id = $1` + lock
	lot, err := scanFuelLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel lot: %w", err)
	}
	return lot, nil
}

// CurrentInStock devuelve el lote vigente de la unidad: INSTOCK de mayor unit_seq.
func (r *FuelLotRepo) CurrentInStock(ctx context.Context, unitID string) (*entity.FuelLot, error) {
	return r.currentInStock(ctx, unitID, "")
}

// CurrentInStockForUpdate devuelve el lote vigente bloqueando la fila.
func (r *FuelLotRepo) CurrentInStockForUpdate(ctx context.Context, unitID string) (*entity.FuelLot, error) {
	return r.currentInStock(ctx, unitID, " FOR UPDATE")
}

func (r *FuelLotRepo) currentInStock(ctx context.Context, unitID, lock string) (*entity.FuelLot, error) {
	query := `
		SELECT ` + fuelLotColumns + `
		FROM fuel_lots
		WHERE unit_id = $1 AND stock_status = $2
		ORDER BY unit_seq DESC
		LIMIT 1` + lock
	lot, err := scanFuelLot(r.q.QueryRow(ctx, query, unitID, entity.StockStatusInStock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("current in-stock lot: %w", err)
	}
	return lot, nil
}

// ListInStockForUpdate lista los lotes INSTOCK de la unidad en orden FIFO
// (unit_seq ascendente) bloqueando todas las filas.
func (r *FuelLotRepo) ListInStockForUpdate(ctx context.Context, unitID string) ([]*entity.FuelLot, error) {
	query := `
		SELECT ` + fuelLotColumns + `
		FROM fuel_lots
		WHERE unit_id = $1 AND stock_status = $2
		ORDER BY unit_seq
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, unitID, entity.StockStatusInStock)
	if err != nil {
		return nil, fmt.Errorf("list in-stock lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.FuelLot
	for rows.Next() {
		lot, err := scanFuelLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fuel lot: %w", err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}

// ListByUnit lista los lotes de una unidad (unit_seq ascendente) con paginación.
func (r *FuelLotRepo) ListByUnit(ctx context.Context, unitID string, limit, offset int) ([]*entity.FuelLot, error) {
	query := `
		SELECT ` + fuelLotColumns + `
		FROM fuel_lots WHERE unit_id = $1 ORDER BY unit_seq LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, unitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fuel lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.FuelLot
	for rows.Next() {
		lot, err := scanFuelLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fuel lot: %w", err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}

// UpdateDerived refresca los caches derivados del lote (used_liters, stock_status).
func (r *FuelLotRepo) UpdateDerived(ctx context.Context, lotID string, usedLiters decimal.Decimal, stockStatus string) error {
	query := `UPDATE fuel_lots SET used_liters = $2, stock_status = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, lotID, usedLiters, stockStatus)
	if err != nil {
		return fmt.Errorf("update lot caches: %w", err)
	}
	return nil
}

// AddTestingLiters acumula litros de prueba en el contador paralelo del lote.
func (r *FuelLotRepo) AddTestingLiters(ctx context.Context, lotID string, liters decimal.Decimal) error {
	query := `
		UPDATE fuel_lots
		SET cumulative_testing_liters = cumulative_testing_liters + $2
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, lotID, liters)
	if err != nil {
		return fmt.Errorf("add testing liters: %w", err)
	}
	return nil
}

// NextCodeSeq asigna atómicamente el siguiente índice de secuencia por (unidad, fecha)
// mediante upsert con RETURNING: nunca lee-luego-escribe.
func (r *FuelLotRepo) NextCodeSeq(ctx context.Context, unitID string, day time.Time) (int, error) {
	query := `
		INSERT INTO lot_code_seqs (unit_id, day, seq)
		VALUES ($1, $2::date, 1)
		ON CONFLICT (unit_id, day)
		DO UPDATE SET seq = lot_code_seqs.seq + 1
		RETURNING seq`
	var seq int
	if err := r.q.QueryRow(ctx, query, unitID, day).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next lot code seq: %w", err)
	}
	return seq, nil
}

// NextUnitSeq asigna atómicamente la siguiente secuencia monótona por unidad.
func (r *FuelLotRepo) NextUnitSeq(ctx context.Context, unitID string) (int64, error) {
	query := `
		INSERT INTO unit_lot_seqs (unit_id, seq)
		VALUES ($1, 1)
		ON CONFLICT (unit_id)
		DO UPDATE SET seq = unit_lot_seqs.seq + 1
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(ctx, query, unitID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next unit seq: %w", err)
	}
	return seq, nil
}
