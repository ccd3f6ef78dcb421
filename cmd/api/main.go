package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/petrosur/fuelops-api/internal/application/lots"
	"github.com/petrosur/fuelops-api/internal/application/reconcile"
	"github.com/petrosur/fuelops-api/internal/application/transfer"
	"github.com/petrosur/fuelops-api/internal/application/usecase"
	infrapdf "github.com/petrosur/fuelops-api/internal/infrastructure/pdf"
	"github.com/petrosur/fuelops-api/internal/infrastructure/postgres"
	httpRouter "github.com/petrosur/fuelops-api/internal/interfaces/http"
	"github.com/petrosur/fuelops-api/pkg/config"
	"github.com/petrosur/fuelops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	unitRepo := postgres.NewStorageUnitRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	lotRepo := postgres.NewFuelLotRepository(pool)
	transferRepo := postgres.NewInternalTransferRepository(pool)
	saleRepo := postgres.NewSaleTransferRepository(pool)
	testingRepo := postgres.NewTestingTransferRepository(pool)
	meterRepo := postgres.NewMeterRepository(pool)
	dayRepo := postgres.NewDayReadingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	lotRegistry := lots.NewRegistry(txRunner, unitRepo)
	lotQueryUC := usecase.NewLotQueryUseCase(lotRepo, transferRepo, saleRepo)
	transferEngine := transfer.NewEngine(txRunner, unitRepo, driverRepo, dayRepo)
	unitUC := usecase.NewStorageUnitUseCase(unitRepo)
	driverUC := usecase.NewDriverUseCase(driverRepo)
	meterUC := usecase.NewMeterUseCase(unitRepo, meterRepo)
	dayReadingUC := usecase.NewDayReadingUseCase(unitRepo, dayRepo)
	reconcileUC := reconcile.NewUseCase(unitRepo, transferRepo, saleRepo, testingRepo, meterRepo, dayRepo)

	// PDF: acta de conciliación por unidad y ventana
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FuelOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UnitUC:         unitUC,
		DriverUC:       driverUC,
		LotRegistry:    lotRegistry,
		LotQuery:       lotQueryUC,
		TransferEngine: transferEngine,
		MeterUC:        meterUC,
		DayReadingUC:   dayReadingUC,
		ReconcileUC:    reconcileUC,
		PDFGenerator:   pdfGenerator,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
