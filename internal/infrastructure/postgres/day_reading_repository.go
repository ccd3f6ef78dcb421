package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

var _ repository.DayReadingRepository = (*DayReadingRepo)(nil)

// DayReadingRepo implementación del puerto DayReadingRepository sobre PostgreSQL.
type DayReadingRepo struct {
	q Querier
}

// NewDayReadingRepository construye el adaptador de lecturas diarias.
func NewDayReadingRepository(q Querier) *DayReadingRepo {
	return &DayReadingRepo{q: q}
}

const dayReadingColumns = `
	id, unit_id, day, trip_id, opening_liters, closing_liters, created_at, updated_at, created_by`

func scanDayReading(row pgx.Row) (*entity.DayReading, error) {
	var d entity.DayReading
	err := row.Scan(&d.ID, &d.UnitID, &d.Date, &d.TripID, &d.OpeningLiters,
		&d.ClosingLiters, &d.CreatedAt, &d.UpdatedAt, &d.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste la lectura de apertura del día. Constraint único por (unidad, día).
func (r *DayReadingRepo) Create(ctx context.Context, reading *entity.DayReading) error {
	query := `
		INSERT INTO day_readings (` + dayReadingColumns + `)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		reading.ID, reading.UnitID, reading.Date, reading.TripID, reading.OpeningLiters,
		reading.ClosingLiters, reading.CreatedAt, reading.UpdatedAt, reading.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert day reading: %w", err)
	}
	return nil
}

// GetByID obtiene una lectura diaria por ID. nil si no existe.
func (r *DayReadingRepo) GetByID(ctx context.Context, id string) (*entity.DayReading, error) {
	query := `SELECT ` + dayReadingColumns + ` FROM day_readings WHERE id = $1`
	d, err := scanDayReading(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get day reading: %w", err)
	}
	return d, nil
}

// GetByUnitAndDate obtiene la lectura de una unidad para un día. nil si no hay.
func (r *DayReadingRepo) GetByUnitAndDate(ctx context.Context, unitID string, date time.Time) (*entity.DayReading, error) {
	query := `SELECT ` + dayReadingColumns + ` FROM day_readings WHERE unit_id = $1 AND day = $2::date`
	d, err := scanDayReading(r.q.QueryRow(ctx, query, unitID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get day reading by date: %w", err)
	}
	return d, nil
}

// SetClosing registra la lectura de cierre del día.
func (r *DayReadingRepo) SetClosing(ctx context.Context, id string, closingLiters decimal.Decimal) error {
	query := `UPDATE day_readings SET closing_liters = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, closingLiters)
	if err != nil {
		return fmt.Errorf("set day reading closing: %w", err)
	}
	return nil
}

// ListByUnit lista lecturas diarias de una unidad (día descendente).
func (r *DayReadingRepo) ListByUnit(ctx context.Context, unitID string, limit, offset int) ([]*entity.DayReading, error) {
	query := `
		SELECT ` + dayReadingColumns + `
		FROM day_readings WHERE unit_id = $1 ORDER BY day DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, unitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list day readings: %w", err)
	}
	defer rows.Close()
	var list []*entity.DayReading
	for rows.Next() {
		d, err := scanDayReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day reading: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
