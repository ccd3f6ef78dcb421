package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/application/usecase"
)

// MeterHandler maneja las peticiones HTTP de lecturas de medidor (protegido).
type MeterHandler struct {
	uc *usecase.MeterUseCase
}

// NewMeterHandler construye el handler.
func NewMeterHandler(uc *usecase.MeterUseCase) *MeterHandler {
	return &MeterHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar lectura física de medidor
// @Tags         meters
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMeterRequest  true  "unit_id, reading_at, reading_liters"
// @Success      201   {object}  usecase.MeterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/meters [post]
func (h *MeterHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMeterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Record(c.Context(), in, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByUnit godoc
// @Summary      Listar lecturas de medidor de una unidad
// @Tags         meters
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        from     query  string  false  "Desde (RFC3339)"
// @Param        to       query  string  false  "Hasta (RFC3339)"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {array}  usecase.MeterResponse
// @Router       /api/units/{unit_id}/meters [get]
func (h *MeterHandler) ListByUnit(c *fiber.Ctx) error {
	unitID := c.Params("unit_id")
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}

	out, err := h.uc.ListByUnit(c.Context(), unitID, from, to, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// parseTimeQuery parsea un query param RFC3339 opcional; nil si está ausente.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
