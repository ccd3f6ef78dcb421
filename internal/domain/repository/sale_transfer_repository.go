package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// SaleTransferRepository define el puerto de persistencia para ventas.
type SaleTransferRepository interface {
	Create(ctx context.Context, sale *entity.SaleTransfer) error
	ListByLot(ctx context.Context, lotID string) ([]*entity.SaleTransfer, error)
	ListByUnit(ctx context.Context, unitID string, from, to *time.Time, limit, offset int) ([]*entity.SaleTransfer, error)
	SumByUnit(ctx context.Context, unitID string, from, to time.Time) (decimal.Decimal, error)
}
