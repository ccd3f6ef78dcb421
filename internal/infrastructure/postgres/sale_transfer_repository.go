package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

var _ repository.SaleTransferRepository = (*SaleTransferRepo)(nil)

// SaleTransferRepo implementación del puerto SaleTransferRepository sobre PostgreSQL.
type SaleTransferRepo struct {
	q Querier
}

// NewSaleTransferRepository construye el adaptador de ventas.
func NewSaleTransferRepository(q Querier) *SaleTransferRepo {
	return &SaleTransferRepo{q: q}
}

const saleTransferColumns = `
	id, lot_id, from_unit_id, to_vehicle, sale_volume_liters, lot_code_after,
	driver_id, performed_at, created_at, created_by`

func scanSaleTransfer(row pgx.Row) (*entity.SaleTransfer, error) {
	var s entity.SaleTransfer
	err := row.Scan(
		&s.ID, &s.LotID, &s.FromUnitID, &s.ToVehicle, &s.SaleVolumeLiters, &s.LotCodeAfter,
		&s.DriverID, &s.PerformedAt, &s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una venta.
func (r *SaleTransferRepo) Create(ctx context.Context, sale *entity.SaleTransfer) error {
	query := `
		INSERT INTO sale_transfers (` + saleTransferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.LotID, sale.FromUnitID, sale.ToVehicle, sale.SaleVolumeLiters,
		sale.LotCodeAfter, sale.DriverID, sale.PerformedAt, sale.CreatedAt, sale.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sale transfer: %w", err)
	}
	return nil
}

// ListByLot lista las ventas de un lote.
func (r *SaleTransferRepo) ListByLot(ctx context.Context, lotID string) ([]*entity.SaleTransfer, error) {
	query := `SELECT ` + saleTransferColumns + ` FROM sale_transfers WHERE lot_id = $1 ORDER BY performed_at`
	return r.queryList(ctx, query, lotID)
}

// ListByUnit lista ventas de una unidad, con ventana opcional y paginación.
func (r *SaleTransferRepo) ListByUnit(ctx context.Context, unitID string, from, to *time.Time, limit, offset int) ([]*entity.SaleTransfer, error) {
	query := `
		SELECT ` + saleTransferColumns + `
		FROM sale_transfers
		WHERE from_unit_id = $1
		  AND ($2::timestamptz IS NULL OR performed_at >= $2)
		  AND ($3::timestamptz IS NULL OR performed_at < $3)
		ORDER BY performed_at DESC
		LIMIT $4 OFFSET $5`
	return r.queryList(ctx, query, unitID, from, to, limit, offset)
}

func (r *SaleTransferRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.SaleTransfer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sale transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleTransfer
	for rows.Next() {
		s, err := scanSaleTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale transfer: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SumByUnit suma el volumen vendido por la unidad en [from, to).
func (r *SaleTransferRepo) SumByUnit(ctx context.Context, unitID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(sale_volume_liters), 0)
		FROM sale_transfers
		WHERE from_unit_id = $1 AND performed_at >= $2 AND performed_at < $3`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, unitID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}
