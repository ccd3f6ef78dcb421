package fuel

import (
	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// LotLedger agrupa las filas del libro que afectan a un lote concreto.
// Es la única fuente de verdad para el remanente: los campos UsedLiters y
// StockStatus del lote son caches y aquí no se consultan.
type LotLedger struct {
	Lot      *entity.FuelLot
	Inbound  []*entity.InternalTransfer // filas con ToLotID == Lot.ID
	Outgoing []*entity.InternalTransfer // filas con FromLotID == Lot.ID
	Sales    []*entity.SaleTransfer     // ventas con LotID == Lot.ID
}

// InboundAdded suma el volumen entrante del lote, excluyendo los tramos que lo
// fundaron (TransferToEmpty: su carga ya está en LoadedLiters) y la actividad
// TESTING, que no altera stock vendible.
func (l LotLedger) InboundAdded() decimal.Decimal {
	total := decimal.Zero
	for _, t := range l.Inbound {
		if t.ToLotID != l.Lot.ID || t.TransferToEmpty || t.Activity == entity.ActivityTesting {
			continue
		}
		total = total.Add(t.TransferVolume)
	}
	return total
}

// OutboundUsed suma ventas y tramos internos salientes del lote.
// Las extracciones de prueba se llevan aparte (CumulativeTestingLiters).
func (l LotLedger) OutboundUsed() decimal.Decimal {
	total := decimal.Zero
	for _, s := range l.Sales {
		if s.LotID != l.Lot.ID {
			continue
		}
		total = total.Add(s.SaleVolumeLiters)
	}
	for _, t := range l.Outgoing {
		if t.FromLotID != l.Lot.ID {
			continue
		}
		total = total.Add(t.TransferVolume)
	}
	return total
}

// Remaining devuelve el remanente vivo del lote:
//
//	max(0, LoadedLiters + InboundAdded − OutboundUsed)
//
// Función pura del estado del libro: mismas filas, mismo resultado.
func (l LotLedger) Remaining() decimal.Decimal {
	r := l.Lot.LoadedLiters.Add(l.InboundAdded()).Sub(l.OutboundUsed())
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// StatusFor devuelve el estado de stock que corresponde a un remanente dado.
func StatusFor(remaining decimal.Decimal) string {
	if remaining.GreaterThan(decimal.Zero) {
		return entity.StockStatusInStock
	}
	return entity.StockStatusSold
}
