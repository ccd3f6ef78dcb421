package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// InternalTransferRepository define el puerto de persistencia para tramos de
// transferencias internas (filas del libro).
type InternalTransferRepository interface {
	Create(ctx context.Context, transfer *entity.InternalTransfer) error
	GetByID(ctx context.Context, id string) (*entity.InternalTransfer, error)

	// GetForUpdate bloquea la fila con FOR UPDATE NOWAIT: si otra transacción la
	// tiene tomada devuelve ErrConcurrentConflict (corrección administrativa).
	GetForUpdate(ctx context.Context, id string) (*entity.InternalTransfer, error)

	// Update reescribe volumen y snapshots de un tramo (solo la corrección
	// administrativa puede cambiar punteros históricos).
	Update(ctx context.Context, transfer *entity.InternalTransfer) error

	ListByFromLot(ctx context.Context, lotID string) ([]*entity.InternalTransfer, error)
	ListByToLot(ctx context.Context, lotID string) ([]*entity.InternalTransfer, error)
	ListByUnit(ctx context.Context, unitID string, from, to *time.Time, limit, offset int) ([]*entity.InternalTransfer, error)

	// NextOutflowSeq asigna atómicamente el siguiente contador de salida de la
	// unidad de origen (contrato: estrictamente creciente por unidad).
	NextOutflowSeq(ctx context.Context, unitID string) (int64, error)

	// SumOutflowByUnit suma el volumen saliente de la unidad en la ventana,
	// excluyendo la actividad TESTING (esa se concilia por su tabla paralela).
	SumOutflowByUnit(ctx context.Context, unitID string, from, to time.Time) (decimal.Decimal, error)
}
