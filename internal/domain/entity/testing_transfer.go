package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TestingTransfer es una fila de auditoría por extracción de prueba (calibración).
// Neto cero sobre el stock vendible: se acumula en CumulativeTestingLiters del lote,
// pero sí cuenta en la conciliación contra medidor (el medidor registra toda salida).
type TestingTransfer struct {
	ID                   string
	LotID                string
	FromUnitID           string
	TransferVolumeLiters decimal.Decimal // > 0
	LotCodeAfter         string
	PerformedAt          time.Time
	CreatedAt            time.Time
	CreatedBy            string
}
