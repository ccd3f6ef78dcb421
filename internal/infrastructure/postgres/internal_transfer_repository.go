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

var _ repository.InternalTransferRepository = (*InternalTransferRepo)(nil)

// InternalTransferRepo implementación del puerto InternalTransferRepository sobre PostgreSQL.
type InternalTransferRepo struct {
	q Querier
}

// NewInternalTransferRepository construye el adaptador de transferencias internas.
func NewInternalTransferRepository(q Querier) *InternalTransferRepo {
	return &InternalTransferRepo{q: q}
}

const internalTransferColumns = `
	id, from_lot_id, to_lot_id, from_unit_id, to_unit_id, transfer_volume,
	from_lot_code_after, to_lot_code_after, transfer_to_empty, activity,
	outflow_seq, driver_id, transferred_at, created_at, created_by`

func scanInternalTransfer(row pgx.Row) (*entity.InternalTransfer, error) {
	var t entity.InternalTransfer
	err := row.Scan(
		&t.ID, &t.FromLotID, &t.ToLotID, &t.FromUnitID, &t.ToUnitID, &t.TransferVolume,
		&t.FromLotCodeAfter, &t.ToLotCodeAfter, &t.TransferToEmpty, &t.Activity,
		&t.OutflowSeq, &t.DriverID, &t.TransferredAt, &t.CreatedAt, &t.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un tramo del libro.
func (r *InternalTransferRepo) Create(ctx context.Context, transfer *entity.InternalTransfer) error {
	query := `
		INSERT INTO internal_transfers (` + internalTransferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.FromLotID, transfer.ToLotID, transfer.FromUnitID, transfer.ToUnitID,
		transfer.TransferVolume, transfer.FromLotCodeAfter, transfer.ToLotCodeAfter,
		transfer.TransferToEmpty, transfer.Activity, transfer.OutflowSeq, transfer.DriverID,
		transfer.TransferredAt, transfer.CreatedAt, transfer.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert internal transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un tramo por ID. nil si no existe.
func (r *InternalTransferRepo) GetByID(ctx context.Context, id string) (*entity.InternalTransfer, error) {
	query := `SELECT ` + internalTransferColumns + ` FROM internal_transfers WHERE id = $1`
	t, err := scanInternalTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get internal transfer: %w", err)
	}
	return t, nil
}

// GetForUpdate bloquea el tramo con FOR UPDATE NOWAIT. Si otra transacción lo
// tiene tomado devuelve ErrConcurrentConflict en vez de esperar.
func (r *InternalTransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.InternalTransfer, error) {
	query := `SELECT ` + internalTransferColumns + ` FROM internal_transfers WHERE id = $1 FOR UPDATE NOWAIT`
	t, err := scanInternalTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockNotAvailable(err) {
			return nil, domain.ErrConcurrentConflict
		}
		return nil, fmt.Errorf("lock internal transfer: %w", err)
	}
	return t, nil
}

// Update reescribe volumen, snapshots y atribución de un tramo (corrección administrativa).
func (r *InternalTransferRepo) Update(ctx context.Context, transfer *entity.InternalTransfer) error {
	query := `
		UPDATE internal_transfers
		SET transfer_volume = $2, from_lot_code_after = $3, to_lot_code_after = $4,
		    driver_id = $5, transferred_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.TransferVolume, transfer.FromLotCodeAfter, transfer.ToLotCodeAfter,
		transfer.DriverID, transfer.TransferredAt,
	)
	if err != nil {
		return fmt.Errorf("update internal transfer: %w", err)
	}
	return nil
}

// ListByFromLot lista los tramos que salieron de un lote.
func (r *InternalTransferRepo) ListByFromLot(ctx context.Context, lotID string) ([]*entity.InternalTransfer, error) {
	return r.list(ctx, `WHERE from_lot_id = $1 ORDER BY outflow_seq`, lotID)
}

// ListByToLot lista los tramos que entraron a un lote.
func (r *InternalTransferRepo) ListByToLot(ctx context.Context, lotID string) ([]*entity.InternalTransfer, error) {
	return r.list(ctx, `WHERE to_lot_id = $1 ORDER BY transferred_at`, lotID)
}

func (r *InternalTransferRepo) list(ctx context.Context, where string, args ...any) ([]*entity.InternalTransfer, error) {
	query := `SELECT ` + internalTransferColumns + ` FROM internal_transfers ` + where
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list internal transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.InternalTransfer
	for rows.Next() {
		t, err := scanInternalTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan internal transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListByUnit lista tramos donde la unidad participó, con ventana opcional y paginación.
func (r *InternalTransferRepo) ListByUnit(ctx context.Context, unitID string, from, to *time.Time, limit, offset int) ([]*entity.InternalTransfer, error) {
	query := `
		SELECT ` + internalTransferColumns + `
		FROM internal_transfers
		WHERE (from_unit_id = $1 OR to_unit_id = $1)
		  AND ($2::timestamptz IS NULL OR transferred_at >= $2)
		  AND ($3::timestamptz IS NULL OR transferred_at < $3)
		ORDER BY transferred_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, unitID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list internal transfers by unit: %w", err)
	}
	defer rows.Close()
	var list []*entity.InternalTransfer
	for rows.Next() {
		t, err := scanInternalTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan internal transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// NextOutflowSeq asigna atómicamente el siguiente contador de salida de la unidad.
func (r *InternalTransferRepo) NextOutflowSeq(ctx context.Context, unitID string) (int64, error) {
	query := `
		INSERT INTO unit_outflow_seqs (unit_id, seq)
		VALUES ($1, 1)
		ON CONFLICT (unit_id)
		DO UPDATE SET seq = unit_outflow_seqs.seq + 1
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(ctx, query, unitID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next outflow seq: %w", err)
	}
	return seq, nil
}

// SumOutflowByUnit suma el volumen saliente de la unidad en [from, to),
// excluyendo la actividad TESTING (se concilia por su tabla paralela).
func (r *InternalTransferRepo) SumOutflowByUnit(ctx context.Context, unitID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(transfer_volume), 0)
		FROM internal_transfers
		WHERE from_unit_id = $1 AND activity <> $2
		  AND transferred_at >= $3 AND transferred_at < $4`
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, unitID, entity.ActivityTesting, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum outflow: %w", err)
	}
	return total, nil
}
