package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/application/usecase"
)

// UnitHandler maneja las peticiones HTTP para unidades de almacenamiento (protegido).
type UnitHandler struct {
	uc *usecase.StorageUnitUseCase
}

// NewUnitHandler construye el handler.
func NewUnitHandler(uc *usecase.StorageUnitUseCase) *UnitHandler {
	return &UnitHandler{uc: uc}
}

// Create godoc
// @Summary      Crear unidad de almacenamiento
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageUnitRequest  true  "type (TRUCK|DATUM|DISPENSER), code, capacity_liters"
// @Success      201   {object}  dto.StorageUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *UnitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageUnitRequest
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
// @Summary      Obtener unidad por ID
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.StorageUnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [get]
func (h *UnitHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar unidad (código, capacidad, activa)
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.UpdateStorageUnitRequest  true  "Campos opcionales"
// @Success      200   {object}  dto.StorageUnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/units/{id} [put]
func (h *UnitHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateStorageUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar unidades
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.StorageUnitListResponse
// @Router       /api/units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
