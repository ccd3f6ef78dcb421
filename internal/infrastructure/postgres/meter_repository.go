package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

var _ repository.MeterRepository = (*MeterRepo)(nil)

// MeterRepo implementación del puerto MeterRepository sobre PostgreSQL.
// Solo inserta y lee: las lecturas de medidor son inmutables.
type MeterRepo struct {
	q Querier
}

// NewMeterRepository construye el adaptador de lecturas de medidor.
func NewMeterRepository(q Querier) *MeterRepo {
	return &MeterRepo{q: q}
}

const meterColumns = `id, unit_id, reading_at, reading_liters, source, created_at, created_by`

func scanMeter(row pgx.Row) (*entity.MeterSnapshot, error) {
	var m entity.MeterSnapshot
	err := row.Scan(&m.ID, &m.UnitID, &m.ReadingAt, &m.ReadingLiters, &m.Source, &m.CreatedAt, &m.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una lectura de medidor.
func (r *MeterRepo) Create(ctx context.Context, snapshot *entity.MeterSnapshot) error {
	query := `
		INSERT INTO meter_snapshots (` + meterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		snapshot.ID, snapshot.UnitID, snapshot.ReadingAt, snapshot.ReadingLiters,
		snapshot.Source, snapshot.CreatedAt, snapshot.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert meter snapshot: %w", err)
	}
	return nil
}

// ListByUnit lista lecturas de una unidad con ventana opcional y paginación.
func (r *MeterRepo) ListByUnit(ctx context.Context, unitID string, from, to *time.Time, limit, offset int) ([]*entity.MeterSnapshot, error) {
	query := `
		SELECT ` + meterColumns + `
		FROM meter_snapshots
		WHERE unit_id = $1
		  AND ($2::timestamptz IS NULL OR reading_at >= $2)
		  AND ($3::timestamptz IS NULL OR reading_at <= $3)
		ORDER BY reading_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, unitID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list meter snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.MeterSnapshot
	for rows.Next() {
		m, err := scanMeter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meter snapshot: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// FirstInWindow devuelve la lectura más antigua con reading_at en [from, to]. nil si no hay.
func (r *MeterRepo) FirstInWindow(ctx context.Context, unitID string, from, to time.Time) (*entity.MeterSnapshot, error) {
	return r.edgeInWindow(ctx, unitID, from, to, "ASC")
}

// LastInWindow devuelve la lectura más reciente con reading_at en [from, to]. nil si no hay.
func (r *MeterRepo) LastInWindow(ctx context.Context, unitID string, from, to time.Time) (*entity.MeterSnapshot, error) {
	return r.edgeInWindow(ctx, unitID, from, to, "DESC")
}

func (r *MeterRepo) edgeInWindow(ctx context.Context, unitID string, from, to time.Time, order string) (*entity.MeterSnapshot, error) {
	query := `
		SELECT ` + meterColumns + `
		FROM meter_snapshots
		WHERE unit_id = $1 AND reading_at >= $2 AND reading_at <= $3
		ORDER BY reading_at ` + order + `
		LIMIT 1`
	m, err := scanMeter(r.q.QueryRow(ctx, query, unitID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("meter snapshot in window: %w", err)
	}
	return m, nil
}
