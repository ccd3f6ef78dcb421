package fuel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Formato compacto de fecha dentro del código de lote (ordenable lexicográficamente).
const codeDateLayout = "060102"

// BaseCode construye el código base de un lote: <código unidad><AAMMDD><letras de secuencia>.
// Estable, ordenable y legible; ej. unidad "T1", 2024-01-15, seq 1 → "T1240115A".
func BaseCode(unitCode string, date time.Time, seq int) string {
	return unitCode + date.Format(codeDateLayout) + SeqLetters(seq)
}

// SeqLetters convierte el índice de secuencia (1-based) a letras base-26 biyectiva:
// 1→A, 2→B, 26→Z, 27→AA.
func SeqLetters(n int) string {
	if n <= 0 {
		return ""
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// DecodeBase recupera código de unidad, fecha e índice de secuencia desde un
// código base. Inverso exacto de BaseCode (propiedad de ida y vuelta).
func DecodeBase(code string) (unitCode string, date time.Time, seq int, err error) {
	// Letras de secuencia al final
	i := len(code)
	for i > 0 && code[i-1] >= 'A' && code[i-1] <= 'Z' {
		i--
	}
	letters := code[i:]
	if letters == "" {
		return "", time.Time{}, 0, fmt.Errorf("código de lote %q: sin letras de secuencia", code)
	}
	rest := code[:i]

	// Fecha compacta de 6 dígitos inmediatamente antes de las letras
	if len(rest) < len(codeDateLayout)+1 {
		return "", time.Time{}, 0, fmt.Errorf("código de lote %q: demasiado corto", code)
	}
	datePart := rest[len(rest)-len(codeDateLayout):]
	date, err = time.Parse(codeDateLayout, datePart)
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("código de lote %q: fecha inválida: %w", code, err)
	}

	unitCode = rest[:len(rest)-len(codeDateLayout)]
	for _, r := range letters {
		seq = seq*26 + int(r-'A') + 1
	}
	return unitCode, date, seq, nil
}

// SnapshotCode produce el snapshot "after" que se persiste en cada fila del libro:
// código base + "-<usadoAcumulado>" + opcional "+(<entradoAcumulado>)".
// Es puramente informativo para auditoría; el cálculo de remanentes nunca
// re-deriva valores parseando esta cadena.
func SnapshotCode(base string, cumulativeUsed, cumulativeInbound decimal.Decimal) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteByte('-')
	sb.WriteString(cumulativeUsed.String())
	if cumulativeInbound.GreaterThan(decimal.Zero) {
		sb.WriteString("+(")
		sb.WriteString(cumulativeInbound.String())
		sb.WriteByte(')')
	}
	return sb.String()
}
