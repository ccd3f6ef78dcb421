package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock de un lote.
const (
	StockStatusInStock = "INSTOCK" // queda remanente vendible
	StockStatusSold    = "SOLD"    // totalmente consumido
)

// Tipos de carga de un lote.
const (
	LoadTypePurchase      = "PURCHASE"       // compra explícita registrada por el operador
	LoadTypeEmptyTransfer = "EMPTY_TRANSFER" // sembrado implícito al transferir a una unidad vacía
)

// FuelLot representa una cantidad discreta de combustible recibida en una unidad
// en un momento dado, consumida en orden FIFO. Nunca se borra; lotes nuevos en la
// misma unidad lo superseden.
//
// UsedLiters y StockStatus son denormalizaciones derivadas del libro (cache de
// escritura sincronizada); cualquier operación multi-lote debe recalcular el
// remanente vivo desde las filas del libro, nunca confiar en el cache.
type FuelLot struct {
	ID                     string
	UnitID                 string
	UnitSeq                int64           // secuencia monótona por unidad; el lote vigente es el de mayor valor
	LoadedLiters           decimal.Decimal // inmutable, > 0
	UsedLiters             decimal.Decimal // cache derivado
	CumulativeTestingLiters decimal.Decimal // litros de prueba acumulados (no afectan stock vendible)
	StockStatus            string          // INSTOCK | SOLD (cache derivado)
	LoadType               string          // PURCHASE | EMPTY_TRANSFER
	LotCodeCreated         string          // inmutable, código base asignado al crear
	LoadTime               time.Time
	CreatedAt              time.Time
	CreatedBy              string
}
