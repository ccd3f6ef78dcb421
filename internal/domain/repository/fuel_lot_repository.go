package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// FuelLotRepository define el puerto de persistencia para lotes de combustible.
//
// Las variantes ForUpdate bloquean las filas (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción: el motor de transferencias las usa para que
// dos operaciones concurrentes no lean el mismo remanente y sobre-comprometan
// volumen. NextCodeSeq y NextUnitSeq son contadores atómicos (upsert con
// RETURNING), nunca lectura-luego-escritura.
type FuelLotRepository interface {
	Create(ctx context.Context, lot *entity.FuelLot) error
	GetByID(ctx context.Context, id string) (*entity.FuelLot, error)
	GetForUpdate(ctx context.Context, id string) (*entity.FuelLot, error)

	// CurrentInStock devuelve el lote vigente de la unidad: el INSTOCK de mayor
	// UnitSeq (selección determinista, no por timestamp). nil si no hay.
	CurrentInStock(ctx context.Context, unitID string) (*entity.FuelLot, error)
	CurrentInStockForUpdate(ctx context.Context, unitID string) (*entity.FuelLot, error)

	// ListInStockForUpdate lista los lotes INSTOCK de la unidad en orden FIFO
	// (UnitSeq ascendente) bloqueando todas las filas.
	ListInStockForUpdate(ctx context.Context, unitID string) ([]*entity.FuelLot, error)

	ListByUnit(ctx context.Context, unitID string, limit, offset int) ([]*entity.FuelLot, error)

	// UpdateDerived refresca los caches derivados del lote (vista materializada
	// sincronizada en la misma transacción que escribe el libro).
	UpdateDerived(ctx context.Context, lotID string, usedLiters decimal.Decimal, stockStatus string) error

	// AddTestingLiters acumula litros de prueba en el contador paralelo del lote.
	AddTestingLiters(ctx context.Context, lotID string, liters decimal.Decimal) error

	// NextCodeSeq asigna atómicamente el siguiente índice de secuencia por (unidad, fecha).
	NextCodeSeq(ctx context.Context, unitID string, day time.Time) (int, error)

	// NextUnitSeq asigna atómicamente la siguiente secuencia monótona por unidad.
	NextUnitSeq(ctx context.Context, unitID string) (int64, error)
}
