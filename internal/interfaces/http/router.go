package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petrosur/fuelops-api/internal/application/lots"
	"github.com/petrosur/fuelops-api/internal/application/reconcile"
	"github.com/petrosur/fuelops-api/internal/application/transfer"
	"github.com/petrosur/fuelops-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UnitUC         *usecase.StorageUnitUseCase
	DriverUC       *usecase.DriverUseCase
	LotRegistry    *lots.Registry
	LotQuery       *usecase.LotQueryUseCase
	TransferEngine *transfer.Engine
	MeterUC        *usecase.MeterUseCase
	DayReadingUC   *usecase.DayReadingUseCase
	ReconcileUC    *reconcile.UseCase
	PDFGenerator   ReportGenerator
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todas las rutas requieren Bearer Token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Storage units (protegido)
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id", unitHandler.Update)

	// Drivers (protegido)
	drivers := protected.Group("/drivers")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/", driverHandler.List)
	drivers.Get("/:id", driverHandler.GetByID)

	// Lots (protegido)
	lotHandler := NewLotHandler(deps.LotRegistry, deps.LotQuery)
	lotsGroup := protected.Group("/lots")
	lotsGroup.Post("/", lotHandler.Create)
	lotsGroup.Get("/:id", lotHandler.GetByID)
	units.Get("/:unit_id/lots", lotHandler.ListByUnit)
	units.Get("/:unit_id/lots/current", lotHandler.Current)

	// Transfers, sales y testing (protegido; corrección solo admin)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferEngine)
	transfers.Post("/", transferHandler.Register)
	transfers.Put("/:id", RequireRole("admin"), transferHandler.FullUpdate)

	// Meter snapshots (protegido)
	meters := protected.Group("/meters")
	meterHandler := NewMeterHandler(deps.MeterUC)
	meters.Post("/", meterHandler.Record)
	units.Get("/:unit_id/meters", meterHandler.ListByUnit)

	// Day readings (protegido)
	dayReadings := protected.Group("/day-readings")
	dayReadingHandler := NewDayReadingHandler(deps.DayReadingUC)
	dayReadings.Post("/", dayReadingHandler.Open)
	dayReadings.Put("/:id/closing", dayReadingHandler.Close)
	units.Get("/:unit_id/day-readings", dayReadingHandler.ListByUnit)

	// Reconciliation (protegido)
	reconcileHandler := NewReconcileHandler(deps.ReconcileUC, deps.PDFGenerator)
	units.Get("/:unit_id/reconciliation", reconcileHandler.Reconcile)
}
