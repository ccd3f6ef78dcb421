package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petrosur/fuelops-api/internal/application/lots"
	"github.com/petrosur/fuelops-api/internal/application/transfer"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// Ensure TxRunner implements transfer.TxRunner and lots.TxRunner.
var _ transfer.TxRunner = (*TxRunner)(nil)
var _ lots.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repositorios del libro atados a
// la tx y hace Commit o Rollback. Motor de transferencias y corrección
// administrativa pasan por aquí.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.FuelLotRepository,
	transferRepo repository.InternalTransferRepository,
	saleRepo repository.SaleTransferRepository,
	testingRepo repository.TestingTransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewFuelLotRepository(tx)
	transferRepo := NewInternalTransferRepository(tx)
	saleRepo := NewSaleTransferRepository(tx)
	testingRepo := NewTestingTransferRepository(tx)

	if err := fn(lotRepo, transferRepo, saleRepo, testingRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLots inicia una transacción solo con el repositorio de lotes (registro de compras).
func (r *TxRunner) RunLots(ctx context.Context, fn func(lotRepo repository.FuelLotRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewFuelLotRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
