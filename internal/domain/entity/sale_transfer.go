package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleTransfer es una fila del libro: venta de combustible desde un único lote
// hacia un vehículo externo.
type SaleTransfer struct {
	ID              string
	LotID           string
	FromUnitID      string
	ToVehicle       string // placa o identificador del vehículo receptor
	SaleVolumeLiters decimal.Decimal // > 0
	LotCodeAfter    string
	DriverID        string
	PerformedAt     time.Time
	CreatedAt       time.Time
	CreatedBy       string
}
