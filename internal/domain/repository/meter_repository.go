package repository

import (
	"context"
	"time"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// MeterRepository define el puerto de persistencia para lecturas físicas de medidor.
type MeterRepository interface {
	Create(ctx context.Context, snapshot *entity.MeterSnapshot) error
	ListByUnit(ctx context.Context, unitID string, from, to *time.Time, limit, offset int) ([]*entity.MeterSnapshot, error)

	// FirstInWindow / LastInWindow devuelven la lectura más antigua / más reciente
	// con reading_at dentro de [from, to]. nil si no hay.
	FirstInWindow(ctx context.Context, unitID string, from, to time.Time) (*entity.MeterSnapshot, error)
	LastInWindow(ctx context.Context, unitID string, from, to time.Time) (*entity.MeterSnapshot, error)
}
