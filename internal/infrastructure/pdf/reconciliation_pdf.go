// Package pdf genera el acta de conciliación de una unidad en PDF: el documento
// que el supervisor imprime y firma al cierre del día o de la ventana auditada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Unidad + código  │  Ventana (desde / hasta)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LIBRO: Ventas | Trasvases | Pruebas | Total esperado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MEDIDOR: Apertura | Cierre | Consumo real                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VEREDICTO: discrepancia y clasificación                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/petrosur/fuelops-api/internal/application/reconcile"
	"github.com/petrosur/fuelops-api/internal/domain/fuel"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorOK      = &props.Color{Red: 20, Green: 110, Blue: 50}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera actas de conciliación usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReconciliationPDF genera el acta y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReconciliationPDF(_ context.Context, report *reconcile.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Conciliación de Combustible", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(ledgerRows(report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(meterRows(report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(verdictRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: unidad (izq) y ventana auditada (der).
func headerRow(report *reconcile.Report) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ACTA DE CONCILIACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Unidad: "+report.UnitCode, props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Desde: "+report.From.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
			text.New("Hasta: "+report.To.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// ledgerRows: desglose del consumo esperado según el libro.
func ledgerRows(report *reconcile.Report) []core.Row {
	return []core.Row{
		sectionTitle("CONSUMO SEGÚN LIBRO"),
		ledgerLine("Ventas a vehículos:", report.SalesLiters, false),
		ledgerLine("Trasvases salientes:", report.TransfersOutLiters, false),
		ledgerLine("Extracciones de prueba:", report.TestingLiters, false),
		ledgerLine("TOTAL ESPERADO:", report.ExpectedLiters, true),
	}
}

// meterRows: lecturas físicas y consumo real derivado.
func meterRows(report *reconcile.Report) []core.Row {
	rows := []core.Row{sectionTitle("LECTURAS DE MEDIDOR")}
	if report.OpeningLiters == nil || report.ClosingLiters == nil {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Sin lecturas suficientes en la ventana: no se puede derivar consumo real.",
				props.Text{Size: 9, Color: colorAlert, Top: 1}),
		)))
		return rows
	}
	rows = append(rows,
		ledgerLine("Apertura:", *report.OpeningLiters, false),
		ledgerLine("Cierre:", *report.ClosingLiters, false),
		ledgerLine("CONSUMO REAL:", *report.ActualLiters, true),
	)
	return rows
}

// verdictRow: discrepancia y clasificación, en verde si cuadra y rojo si no.
func verdictRow(report *reconcile.Report) core.Row {
	color := colorAlert
	label := report.Verdict
	switch report.Verdict {
	case fuel.VerdictMatches:
		color = colorOK
		label = "CUADRA: libro y medidor coinciden"
	case fuel.VerdictMeterOver:
		label = "DESCUADRE: el medidor registra más que el libro"
	case fuel.VerdictMeterUnder:
		label = "DESCUADRE: el medidor registra menos que el libro"
	case fuel.VerdictNoMeterData:
		color = colorGray
		label = "SIN CONCLUSIÓN: faltan lecturas de medidor"
	}

	discrepancia := "—"
	if report.DiscrepancyLiters != nil {
		discrepancia = report.DiscrepancyLiters.StringFixed(2) + " L"
	}

	return row.New(16).Add(
		col.New(8).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: color, Top: 3,
			}),
		),
		col.New(4).Add(
			text.New("Discrepancia: "+discrepancia, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: color, Top: 4,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func ledgerLine(label string, value decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	size := 9.0
	if bold {
		style = fontstyle.Bold
		size = 10
	}
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: style, Size: size, Align: align.Right, Right: 2, Top: 1,
		})),
		col.New(4).Add(text.New(value.StringFixed(2)+" L", props.Text{
			Style: style, Size: size, Align: align.Right, Right: 1, Top: 1,
		})),
	)
}
