package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeterSnapshot es una lectura física del medidor de una unidad.
// Verdad de terreno para la conciliación; el libro nunca la modifica.
type MeterSnapshot struct {
	ID            string
	UnitID        string
	ReadingAt     time.Time
	ReadingLiters decimal.Decimal
	Source        string // operador, telemetría, etc.
	CreatedAt     time.Time
	CreatedBy     string
}
