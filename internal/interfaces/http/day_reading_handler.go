package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/application/usecase"
)

// DayReadingHandler maneja las peticiones HTTP de lecturas diarias (protegido).
type DayReadingHandler struct {
	uc *usecase.DayReadingUseCase
}

// NewDayReadingHandler construye el handler.
func NewDayReadingHandler(uc *usecase.DayReadingUseCase) *DayReadingHandler {
	return &DayReadingHandler{uc: uc}
}

// Open godoc
// @Summary      Registrar apertura del día de una unidad
// @Tags         day-readings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordDayReadingRequest  true  "unit_id, date, opening_liters, trip_id opcional"
// @Success      201   {object}  usecase.DayReadingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/day-readings [post]
func (h *DayReadingHandler) Open(c *fiber.Ctx) error {
	var in dto.RecordDayReadingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Open(c.Context(), in, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Registrar cierre del día
// @Tags         day-readings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la lectura diaria"
// @Param        body  body  dto.CloseDayReadingRequest  true  "closing_liters"
// @Success      200   {object}  usecase.DayReadingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/day-readings/{id}/closing [put]
func (h *DayReadingHandler) Close(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CloseDayReadingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Close(c.Context(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListByUnit godoc
// @Summary      Listar lecturas diarias de una unidad
// @Tags         day-readings
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {array}  usecase.DayReadingResponse
// @Router       /api/units/{unit_id}/day-readings [get]
func (h *DayReadingHandler) ListByUnit(c *fiber.Ctx) error {
	unitID := c.Params("unit_id")
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.ListByUnit(c.Context(), unitID, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
