package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// TestingTransferRepository define el puerto de persistencia para extracciones de prueba.
type TestingTransferRepository interface {
	Create(ctx context.Context, testing *entity.TestingTransfer) error
	ListByLot(ctx context.Context, lotID string) ([]*entity.TestingTransfer, error)
	SumByUnit(ctx context.Context, unitID string, from, to time.Time) (decimal.Decimal, error)
}
