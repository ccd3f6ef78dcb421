package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/application/lots"
	"github.com/petrosur/fuelops-api/internal/application/usecase"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
)

// LotHandler maneja las peticiones HTTP para lotes de combustible (protegido).
type LotHandler struct {
	registry *lots.Registry
	query    *usecase.LotQueryUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(registry *lots.Registry, query *usecase.LotQueryUseCase) *LotHandler {
	return &LotHandler{registry: registry, query: query}
}

// Create godoc
// @Summary      Registrar compra de combustible (lote nuevo)
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "unit_id, loaded_liters, load_time opcional"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := lots.CreateLotInput{
		UnitID:       in.UnitID,
		LoadedLiters: in.LoadedLiters,
		ActorID:      GetUserID(c),
	}
	if in.LoadTime != nil {
		input.LoadTime = *in.LoadTime
	}
	lot, err := h.registry.CreateLot(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newLotResponse(lot))
}

// GetByID godoc
// @Summary      Obtener lote por ID con remanente vivo
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.query.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.JSON(out)
}

// ListByUnit godoc
// @Summary      Listar lotes de una unidad (orden FIFO) con remanentes vivos
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.LotListResponse
// @Router       /api/units/{unit_id}/lots [get]
func (h *LotHandler) ListByUnit(c *fiber.Ctx) error {
	unitID := c.Params("unit_id")
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.query.ListByUnit(c.Context(), unitID, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Lote vigente de una unidad (INSTOCK de mayor secuencia)
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{unit_id}/lots/current [get]
func (h *LotHandler) Current(c *fiber.Ctx) error {
	unitID := c.Params("unit_id")
	out, err := h.query.Current(c.Context(), unitID)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la unidad no tiene lote vigente"})
	}
	return c.JSON(out)
}

// newLotResponse mapea un lote recién creado (sin movimientos todavía).
func newLotResponse(lot *entity.FuelLot) dto.LotResponse {
	return dto.LotResponse{
		ID:                      lot.ID,
		UnitID:                  lot.UnitID,
		UnitSeq:                 lot.UnitSeq,
		LotCode:                 lot.LotCodeCreated,
		LoadedLiters:            lot.LoadedLiters,
		UsedLiters:              lot.UsedLiters,
		RemainingLiters:         lot.LoadedLiters,
		CumulativeTestingLiters: lot.CumulativeTestingLiters,
		StockStatus:             lot.StockStatus,
		LoadType:                lot.LoadType,
		LoadTime:                lot.LoadTime,
		CreatedAt:               lot.CreatedAt,
	}
}
