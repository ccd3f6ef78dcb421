package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

var _ repository.TestingTransferRepository = (*TestingTransferRepo)(nil)

// TestingTransferRepo implementación del puerto TestingTransferRepository sobre PostgreSQL.
type TestingTransferRepo struct {
	q Querier
}

// NewTestingTransferRepository construye el adaptador de extracciones de prueba.
func NewTestingTransferRepository(q Querier) *TestingTransferRepo {
	return &TestingTransferRepo{q: q}
}

// Create persiste una extracción de prueba.
func (r *TestingTransferRepo) Create(ctx context.Context, testing *entity.TestingTransfer) error {
	query := `
		INSERT INTO testing_transfers (id, lot_id, from_unit_id, transfer_volume_liters,
			lot_code_after, performed_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		testing.ID, testing.LotID, testing.FromUnitID, testing.TransferVolumeLiters,
		testing.LotCodeAfter, testing.PerformedAt, testing.CreatedAt, testing.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert testing transfer: %w", err)
	}
	return nil
}

// ListByLot lista las extracciones de prueba de un lote.
func (r *TestingTransferRepo) ListByLot(ctx context.Context, lotID string) ([]*entity.TestingTransfer, error) {
	query := `
		SELECT id, lot_id, from_unit_id, transfer_volume_liters, lot_code_after,
		       performed_at, created_at, created_by
		FROM testing_transfers WHERE lot_id = $1 ORDER BY performed_at`
	rows, err := r.q.Query(ctx, query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list testing transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.TestingTransfer
	for rows.Next() {
		var t entity.TestingTransfer
		if err := rows.Scan(&t.ID, &t.LotID, &t.FromUnitID, &t.TransferVolumeLiters,
			&t.LotCodeAfter, &t.PerformedAt, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan testing transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SumByUnit suma el volumen de prueba extraído por la unidad en [from, to).
func (r *TestingTransferRepo) SumByUnit(ctx context.Context, unitID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(transfer_volume_liters), 0)
		FROM testing_transfers
		WHERE from_unit_id = $1 AND performed_at >= $2 AND performed_at < $3`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, unitID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum testing transfers: %w", err)
	}
	return total, nil
}
