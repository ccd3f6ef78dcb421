package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest body para POST /api/lots (compra explícita).
type CreateLotRequest struct {
	UnitID       string          `json:"unit_id"`
	LoadedLiters decimal.Decimal `json:"loaded_liters"`
	LoadTime     *time.Time      `json:"load_time,omitempty"` // por defecto: ahora
}

// LotResponse representación HTTP de un lote, con remanente vivo calculado del libro.
type LotResponse struct {
	ID                      string          `json:"id"`
	UnitID                  string          `json:"unit_id"`
	UnitSeq                 int64           `json:"unit_seq"`
	LotCode                 string          `json:"lot_code"`
	LoadedLiters            decimal.Decimal `json:"loaded_liters"`
	UsedLiters              decimal.Decimal `json:"used_liters"`
	RemainingLiters         decimal.Decimal `json:"remaining_liters"`
	CumulativeTestingLiters decimal.Decimal `json:"cumulative_testing_liters"`
	StockStatus             string          `json:"stock_status"`
	LoadType                string          `json:"load_type"`
	LoadTime                time.Time       `json:"load_time"`
	CreatedAt               time.Time       `json:"created_at"`
}

// LotListResponse listado de lotes de una unidad.
type LotListResponse struct {
	Items []LotResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// RegisterTransferRequest body para POST /api/transfers.
// Para actividades internas (TANKER_TO_TANKER, TANKER_TO_DATUM): to_unit_id.
// Para ventas (TANKER_TO_VEHICLE, DATUM_TO_VEHICLE): to_vehicle.
// Para TESTING: solo from_unit_id.
type RegisterTransferRequest struct {
	Activity     string          `json:"activity"`
	FromUnitID   string          `json:"from_unit_id"`
	ToUnitID     string          `json:"to_unit_id,omitempty"`
	ToVehicle    string          `json:"to_vehicle,omitempty"`
	VolumeLiters decimal.Decimal `json:"volume_liters"`
	DriverID     string          `json:"driver_id,omitempty"`
	PerformedAt  *time.Time      `json:"performed_at,omitempty"`
}

// TransferSliceResponse un tramo del reparto FIFO.
type TransferSliceResponse struct {
	TransferID       string          `json:"transfer_id"`
	FromLotID        string          `json:"from_lot_id"`
	VolumeLiters     decimal.Decimal `json:"volume_liters"`
	FromLotCodeAfter string          `json:"from_lot_code_after"`
	ToLotCodeAfter   string          `json:"to_lot_code_after,omitempty"`
	OutflowSeq       int64           `json:"outflow_seq"`
}

// RegisterTransferResponse resultado de una transferencia interna, venta o prueba.
type RegisterTransferResponse struct {
	Activity     string                  `json:"activity"`
	FromUnitID   string                  `json:"from_unit_id"`
	ToUnitID     string                  `json:"to_unit_id,omitempty"`
	ToLotID      string                  `json:"to_lot_id,omitempty"`
	SeededNewLot bool                    `json:"seeded_new_lot,omitempty"`
	VolumeLiters decimal.Decimal         `json:"volume_liters"`
	Slices       []TransferSliceResponse `json:"slices,omitempty"`
	SaleID       string                  `json:"sale_id,omitempty"`
	TestingID    string                  `json:"testing_id,omitempty"`
	LotCodeAfter string                  `json:"lot_code_after,omitempty"`
}

// FullUpdateTransferRequest body para PUT /api/transfers/{id} (corrección administrativa).
type FullUpdateTransferRequest struct {
	VolumeLiters  decimal.Decimal `json:"volume_liters"`
	DriverID      *string         `json:"driver_id,omitempty"`
	TransferredAt *time.Time      `json:"transferred_at,omitempty"`
}

// RecordMeterRequest body para POST /api/meters.
type RecordMeterRequest struct {
	UnitID        string          `json:"unit_id"`
	ReadingAt     time.Time       `json:"reading_at"`
	ReadingLiters decimal.Decimal `json:"reading_liters"`
	Source        string          `json:"source,omitempty"`
}

// RecordDayReadingRequest body para POST /api/day-readings (apertura del día).
type RecordDayReadingRequest struct {
	UnitID        string          `json:"unit_id"`
	Date          time.Time       `json:"date"`
	TripID        string          `json:"trip_id,omitempty"`
	OpeningLiters decimal.Decimal `json:"opening_liters"`
}

// CloseDayReadingRequest body para PUT /api/day-readings/{id}/closing.
type CloseDayReadingRequest struct {
	ClosingLiters decimal.Decimal `json:"closing_liters"`
}

// ReconciliationResponse resultado de conciliar una unidad contra su medidor.
type ReconciliationResponse struct {
	UnitID             string           `json:"unit_id"`
	UnitCode           string           `json:"unit_code"`
	From               time.Time        `json:"from"`
	To                 time.Time        `json:"to"`
	SalesLiters        decimal.Decimal  `json:"sales_liters"`
	TransfersOutLiters decimal.Decimal  `json:"transfers_out_liters"`
	TestingLiters      decimal.Decimal  `json:"testing_liters"`
	ExpectedLiters     decimal.Decimal  `json:"expected_liters"`
	OpeningLiters      *decimal.Decimal `json:"opening_liters,omitempty"`
	ClosingLiters      *decimal.Decimal `json:"closing_liters,omitempty"`
	ActualLiters       *decimal.Decimal `json:"actual_liters,omitempty"`
	DiscrepancyLiters  *decimal.Decimal `json:"discrepancy_liters,omitempty"`
	Verdict            string           `json:"verdict"`
}
