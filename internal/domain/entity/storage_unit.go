package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de unidad de almacenamiento.
const (
	UnitTypeTruck     = "TRUCK"     // cisterna móvil
	UnitTypeDatum     = "DATUM"     // tanque fijo
	UnitTypeDispenser = "DISPENSER" // surtidor
)

// StorageUnit representa una unidad que almacena combustible: cisterna, tanque fijo o surtidor.
// El núcleo de inventario solo la lee; su administración es CRUD plano.
type StorageUnit struct {
	ID             string
	Type           string // TRUCK | DATUM | DISPENSER
	Code           string // código corto usado como prefijo de los códigos de lote (ej. "T1")
	CapacityLiters decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanSeedLot indica si la unidad admite creación implícita de lote al recibir
// una transferencia sin lote INSTOCK (solo tanques fijos y cisternas).
func (u *StorageUnit) CanSeedLot() bool {
	return u.Type == UnitTypeDatum || u.Type == UnitTypeTruck
}
