package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayReading registra las lecturas de apertura y cierre de una unidad para un día
// (u opcionalmente un viaje). Acota las ventanas de conciliación y es la
// precondición de apertura para transferencias internas.
type DayReading struct {
	ID             string
	UnitID         string
	Date           time.Time // día operativo (trunc a fecha)
	TripID         string    // opcional
	OpeningLiters  decimal.Decimal
	ClosingLiters  *decimal.Decimal // nil hasta que el operador cierra el día
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
}
