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

	appanalytics "github.com/jhoicas/epharma-api/internal/application/analytics"
	"github.com/jhoicas/epharma-api/internal/application/auth"
	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/epharma-api/internal/infrastructure/pdf"
	"github.com/jhoicas/epharma-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/epharma-api/internal/interfaces/http"
	"github.com/jhoicas/epharma-api/pkg/config"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer backend.Close()

	movementUC := inventory.NewMovementUseCase(backend.TxRunner, log)
	itemUC := usecase.NewInventoryItemUseCase(backend.Items, backend.TxRunner)
	queryUC := usecase.NewMovementQueryUseCase(backend.StockIns, backend.Sales)

	// PDF: exportación del reporte de ventas
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name + " - Reporte de ventas")
	reportUC := usecase.NewSalesReportUseCase(backend.Reports, pdfGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(backend.Reports, backend.Items)

	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "ePharma API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		Movements:   movementUC,
		QueryUC:     queryUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
		Logger:      log,
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
