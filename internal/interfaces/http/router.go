package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epharma-api/internal/application/analytics"
	"github.com/jhoicas/epharma-api/internal/application/auth"
	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/application/usecase"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.InventoryItemUseCase
	Movements   *inventory.MovementUseCase
	QueryUC     *usecase.MovementQueryUseCase
	ReportUC    *usecase.SalesReportUseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	AppName     string
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth: login público; registro abierto solo para el primer operador
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/register", RegistrationGuard(deps.AuthUC, deps.JWTSecret, log), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.AuthUC, log)
	users.Get("/", userHandler.List)
	users.Get("/me", userHandler.Me)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.QueryUC, log)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Post("/bulk", itemHandler.CreateBulk)
	items.Post("/import", itemHandler.Import)
	items.Get("/barcode/:barcode", itemHandler.GetByBarcode)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Put("/:id/barcode", itemHandler.UpdateBarcode)
	items.Get("/:id/expiry", itemHandler.Expiry)
	items.Get("/:id/stock-ins", itemHandler.StockIns)

	stockIns := protected.Group("/stock-ins")
	stockInHandler := NewStockInHandler(deps.Movements, deps.QueryUC, log)
	stockIns.Get("/", stockInHandler.List)
	stockIns.Post("/", stockInHandler.Create)
	stockIns.Post("/batch", stockInHandler.CreateBatch)
	stockIns.Get("/:id", stockInHandler.GetByID)
	stockIns.Delete("/:id", stockInHandler.Reverse)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Movements, deps.QueryUC, log)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Post("/batch", saleHandler.CreateBatch)
	sales.Get("/:id", saleHandler.GetByID)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports.Get("/sales", reportHandler.Sales)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
