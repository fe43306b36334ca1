package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-api/internal/application/analytics"
	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/export"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain/catalog"
	"github.com/jhoicas/stock-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	DashboardUC *analytics.DashboardUseCase
	ExportUC    *export.ExportUseCase
	Taxonomy    *catalog.Taxonomy
	Metrics     *metrics.Metrics // nil desactiva /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Públicos
	system := NewSystemHandler(deps.Taxonomy)
	api.Get("/health", system.Health)
	api.Get("/categories", system.Categories)
	api.Get("/public/search", system.PublicSearch)

	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC, deps.Metrics))

	merchants := protected.Group("/merchants")
	merchants.Get("/me", authHandler.Me)
	merchants.Put("/me/status", authHandler.SetStatus)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Metrics)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", analyticsHandler.GetStats)
	protected.Get("/alerts/low-stock", analyticsHandler.GetLowStockAlerts)

	exportHandler := NewExportHandler(deps.ExportUC)
	protected.Get("/export/products", exportHandler.ExportProducts)
}
