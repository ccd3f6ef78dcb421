package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/domain"
)

// domainError traduce los errores de dominio a respuestas HTTP con código estable.
// Los conflictos de inventario (stock, capacidad, concurrencia) son 409: el
// cliente puede reintentar o corregir; la apertura faltante es 412 porque falta
// una precondición operativa, no un dato del request.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnitInactive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNIT_INACTIVE", Message: "la unidad está inactiva"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrCapacityExceeded):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAPACITY_EXCEEDED", Message: "capacidad de la unidad excedida"})
	case errors.Is(err, domain.ErrOpeningMissing):
		return c.Status(fiber.StatusPreconditionFailed).JSON(dto.ErrorResponse{Code: "OPENING_MISSING", Message: "falta la lectura de apertura del día"})
	case errors.Is(err, domain.ErrConcurrentConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_CONFLICT", Message: "otra operación tiene tomado el registro; reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
