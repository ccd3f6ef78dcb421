package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/dto"
	"github.com/petrosur/fuelops-api/internal/application/transfer"
)

// TransferHandler maneja las peticiones HTTP de transferencias, ventas y pruebas (protegido).
type TransferHandler struct {
	engine *transfer.Engine
}

// NewTransferHandler construye el handler.
func NewTransferHandler(engine *transfer.Engine) *TransferHandler {
	return &TransferHandler{engine: engine}
}

// Register godoc
// @Summary      Registrar transferencia, venta o prueba
// @Description  Actividades internas (TANKER_TO_TANKER, TANKER_TO_DATUM) reparten
//
//	FIFO multi-lote; ventas (TANKER_TO_VEHICLE, DATUM_TO_VEHICLE) consumen
//	el lote vigente; TESTING es neto cero sobre stock vendible.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransferRequest  true  "activity, from_unit_id, to_unit_id|to_vehicle, volume_liters"
// @Success      201   {object}  dto.RegisterTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := transfer.TransferInput{
		Activity:   in.Activity,
		FromUnitID: in.FromUnitID,
		ToUnitID:   in.ToUnitID,
		ToVehicle:  in.ToVehicle,
		Volume:     in.VolumeLiters,
		DriverID:   in.DriverID,
		ActorID:    GetUserID(c),
	}
	if in.PerformedAt != nil {
		input.PerformedAt = *in.PerformedAt
	}
	result, err := h.engine.Register(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(result))
}

// FullUpdate godoc
// @Summary      Corrección administrativa de un tramo (solo admin)
// @Description  Reescribe volumen, conductor y fecha de un tramo histórico,
//
//	revalidando stock del origen y capacidad del destino con bloqueo
//	NOWAIT sobre la fila.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tramo"
// @Param        body  body  dto.FullUpdateTransferRequest  true  "volume_liters, driver_id, transferred_at"
// @Success      200   {object}  dto.RegisterTransferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [put]
func (h *TransferHandler) FullUpdate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.FullUpdateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.engine.FullUpdate(c.Context(), transfer.FullUpdateInput{
		TransferID:    id,
		Volume:        in.VolumeLiters,
		DriverID:      in.DriverID,
		TransferredAt: in.TransferredAt,
		ActorID:       GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toTransferResponse(result))
}

func toTransferResponse(result *transfer.Result) dto.RegisterTransferResponse {
	out := dto.RegisterTransferResponse{
		Activity:     result.Activity,
		VolumeLiters: result.Volume,
		SeededNewLot: result.SeededNewLot,
		SaleID:       result.SaleID,
		TestingID:    result.TestingID,
		LotCodeAfter: result.LotCodeAfter,
	}
	if result.FromUnit != nil {
		out.FromUnitID = result.FromUnit.ID
	}
	if result.ToUnit != nil {
		out.ToUnitID = result.ToUnit.ID
	}
	if result.ToLot != nil {
		out.ToLotID = result.ToLot.ID
	}
	for _, s := range result.Slices {
		out.Slices = append(out.Slices, dto.TransferSliceResponse{
			TransferID:       s.TransferID,
			FromLotID:        s.FromLot.ID,
			VolumeLiters:     s.Volume,
			FromLotCodeAfter: s.FromLotCodeAfter,
			ToLotCodeAfter:   s.ToLotCodeAfter,
			OutflowSeq:       s.OutflowSeq,
		})
	}
	return out
}
