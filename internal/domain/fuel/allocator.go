package fuel

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// LotBalance es un lote INSTOCK con su remanente vivo ya calculado desde el libro.
type LotBalance struct {
	Lot       *entity.FuelLot
	Remaining decimal.Decimal
}

// Allocation es la porción de volumen asignada a un lote por el reparto FIFO.
type Allocation struct {
	Lot    *entity.FuelLot
	Volume decimal.Decimal
}

// Consume reparte el volumen solicitado entre los lotes en orden FIFO
// (UnitSeq ascendente: el más antiguo primero), tomando de cada lote
// min(remanente, pendiente) hasta agotar la solicitud.
//
// Si el volumen solicitado supera el remanente agregado devuelve
// ErrInsufficientStock sin asignar nada; el caller no debe escribir filas.
// Reparto compartido por transferencias internas, ventas y pruebas.
func Consume(balances []LotBalance, volume decimal.Decimal) ([]Allocation, error) {
	if !volume.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	ordered := make([]LotBalance, len(balances))
	copy(ordered, balances)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Lot.UnitSeq < ordered[j].Lot.UnitSeq
	})

	available := decimal.Zero
	for _, b := range ordered {
		available = available.Add(b.Remaining)
	}
	if available.LessThan(volume) {
		return nil, domain.ErrInsufficientStock
	}

	var allocations []Allocation
	left := volume
	for _, b := range ordered {
		if !left.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(b.Remaining, left)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		allocations = append(allocations, Allocation{Lot: b.Lot, Volume: take})
		left = left.Sub(take)
	}
	return allocations, nil
}
