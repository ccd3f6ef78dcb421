package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Actividades de transferencia.
const (
	ActivityTankerToTanker  = "TANKER_TO_TANKER"
	ActivityTankerToDatum   = "TANKER_TO_DATUM"
	ActivityTankerToVehicle = "TANKER_TO_VEHICLE"
	ActivityDatumToVehicle  = "DATUM_TO_VEHICLE"
	ActivityTesting         = "TESTING"
)

// InternalTransfer es una fila del libro: un tramo (slice) de una transferencia
// interna entre unidades. Una transferencia FIFO multi-lote produce una fila por
// lote de origen consumido.
//
// TransferToEmpty marca explícitamente los tramos que fundaron el lote destino
// (sembrado en unidad vacía); esos tramos se excluyen de las sumas de entrada
// del lote para no contar dos veces la carga fundacional.
type InternalTransfer struct {
	ID                string
	FromLotID         string
	ToLotID           string
	FromUnitID        string
	ToUnitID          string
	TransferVolume    decimal.Decimal // > 0
	FromLotCodeAfter  string          // snapshot informativo del código del lote origen tras el tramo
	ToLotCodeAfter    string          // snapshot informativo del código del lote destino tras el tramo
	TransferToEmpty   bool
	Activity          string // TANKER_TO_TANKER | TANKER_TO_DATUM | TESTING
	OutflowSeq        int64  // contador monótono de salidas por unidad de origen
	DriverID          string // atribución opcional
	TransferredAt     time.Time
	CreatedAt         time.Time
	CreatedBy         string
}
