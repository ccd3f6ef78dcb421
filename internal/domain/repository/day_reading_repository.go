package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// DayReadingRepository define el puerto de persistencia para lecturas diarias
// de apertura/cierre (acotan ventanas de conciliación y son precondición de
// apertura para transferencias internas).
type DayReadingRepository interface {
	Create(ctx context.Context, reading *entity.DayReading) error
	GetByID(ctx context.Context, id string) (*entity.DayReading, error)
	GetByUnitAndDate(ctx context.Context, unitID string, date time.Time) (*entity.DayReading, error)
	SetClosing(ctx context.Context, id string, closingLiters decimal.Decimal) error
	ListByUnit(ctx context.Context, unitID string, limit, offset int) ([]*entity.DayReading, error)
}
