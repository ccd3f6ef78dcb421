package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/application/usecase"
)

// DriverHandler maneja las peticiones HTTP para conductores (protegido).
type DriverHandler struct {
	uc *usecase.DriverUseCase
}

// NewDriverHandler construye el handler.
func NewDriverHandler(uc *usecase.DriverUseCase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

// Create godoc
// @Summary      Crear conductor
// @Tags         drivers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDriverRequest  true  "name, phone"
// @Success      201   {object}  dto.DriverResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drivers [post]
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener conductor por ID
// @Tags         drivers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del conductor"
// @Success      200  {object}  dto.DriverResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [get]
func (h *DriverHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conductor no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar conductores
// @Tags         drivers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.DriverListResponse
// @Router       /api/drivers [get]
func (h *DriverHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
