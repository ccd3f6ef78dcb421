package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/application/reconcile"
)

// ReportGenerator genera el acta de conciliación en PDF.
type ReportGenerator interface {
	GenerateReconciliationPDF(ctx context.Context, report *reconcile.Report) ([]byte, error)
}

// ReconcileHandler maneja las peticiones HTTP de conciliación (protegido).
type ReconcileHandler struct {
	uc  *reconcile.UseCase
	pdf ReportGenerator
}

// NewReconcileHandler construye el handler.
func NewReconcileHandler(uc *reconcile.UseCase, pdf ReportGenerator) *ReconcileHandler {
	return &ReconcileHandler{uc: uc, pdf: pdf}
}

// Reconcile godoc
// @Summary      Conciliar una unidad contra su medidor
// @Description  Ventana por día operativo (date=YYYY-MM-DD) o por límites
//
//	explícitos (from/to RFC3339). Con format=pdf devuelve el acta.
//
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        date     query  string  false  "Día operativo (YYYY-MM-DD)"
// @Param        from     query  string  false  "Desde (RFC3339)"
// @Param        to       query  string  false  "Hasta (RFC3339)"
// @Param        format   query  string  false  "json (default) | pdf"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{unit_id}/reconciliation [get]
func (h *ReconcileHandler) Reconcile(c *fiber.Ctx) error {
	input := reconcile.Input{UnitID: c.Params("unit_id")}

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date inválido (YYYY-MM-DD)"})
		}
		input.Date = &date
	} else {
		from, err := parseTimeQuery(c, "from")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		to, err := parseTimeQuery(c, "to")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		input.From, input.To = from, to
	}

	report, err := h.uc.Reconcile(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}

	if c.Query("format") == "pdf" {
		data, err := h.pdf.GenerateReconciliationPDF(c.Context(), report)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="conciliacion-`+report.UnitCode+`.pdf"`)
		return c.Send(data)
	}

	return c.JSON(dto.ReconciliationResponse{
		UnitID:             report.UnitID,
		UnitCode:           report.UnitCode,
		From:               report.From,
		To:                 report.To,
		SalesLiters:        report.SalesLiters,
		TransfersOutLiters: report.TransfersOutLiters,
		TestingLiters:      report.TestingLiters,
		ExpectedLiters:     report.ExpectedLiters,
		OpeningLiters:      report.OpeningLiters,
		ClosingLiters:      report.ClosingLiters,
		ActualLiters:       report.ActualLiters,
		DiscrepancyLiters:  report.DiscrepancyLiters,
		Verdict:            report.Verdict,
	})
}
