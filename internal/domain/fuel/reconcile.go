package fuel

import "github.com/shopspring/decimal"

// Veredictos de conciliación entre libro y medidor.
const (
	VerdictMatches     = "MATCHES"       // libro y medidor coinciden
	VerdictMeterOver   = "METER_OVER"    // el medidor registra más que lo anotado (posible despacho sin registrar)
	VerdictMeterUnder  = "METER_UNDER"   // el medidor registra menos (posible sobre-registro o reinicio del medidor)
	VerdictNoMeterData = "NO_METER_DATA" // falta lectura de apertura o cierre; no se puede concluir
)

// Compare calcula consumo real y discrepancia de una ventana:
//
//	actual      = cierre − apertura        (nil si falta un extremo)
//	discrepancia = actual − esperado       (nil si actual es nil)
//
// Solo detección: nunca corrige datos del libro.
func Compare(expected decimal.Decimal, opening, closing *decimal.Decimal) (actual, discrepancy *decimal.Decimal, verdict string) {
	if opening == nil || closing == nil {
		return nil, nil, VerdictNoMeterData
	}
	a := closing.Sub(*opening)
	d := a.Sub(expected)
	return &a, &d, Classify(d)
}

// Classify clasifica una discrepancia ya calculada.
func Classify(discrepancy decimal.Decimal) string {
	switch {
	case discrepancy.IsZero():
		return VerdictMatches
	case discrepancy.IsPositive():
		return VerdictMeterOver
	default:
		return VerdictMeterUnder
	}
}
