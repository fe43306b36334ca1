package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/stock-api/docs"
	appanalytics "github.com/jhoicas/stock-api/internal/application/analytics"
	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/export"
	"github.com/jhoicas/stock-api/internal/application/ports"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain/catalog"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/domain/tenancy"
	"github.com/jhoicas/stock-api/internal/infrastructure/geocoding"
	"github.com/jhoicas/stock-api/internal/infrastructure/memstore"
	"github.com/jhoicas/stock-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-api/internal/infrastructure/security"
	"github.com/jhoicas/stock-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/stock-api/internal/interfaces/http"
	"github.com/jhoicas/stock-api/pkg/config"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// @title                       Stock API
// @version                     1.0
// @description                 Gestión de inventario multi-comercio: catálogo, analítica de stock y exportación.
// @host                        localhost:8001
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:   cfg.App.Name,
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	m := metrics.New(cfg.Metrics.Prefix)

	store, merchantRepo, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer closeStore()

	provider, err := security.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de autenticación")
	}

	// Geocodificación: Nominatim, opcionalmente detrás de una caché Redis.
	var geocoder ports.GeocodingProvider = geocoding.NewNominatimService(
		cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, cfg.Geocoding.Timeout, log.Component("geocoding"), m,
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// La caché es opcional: se sigue sin ella si Redis no responde al arrancar.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible; geocodificación sin caché")
		} else {
			geocoder = geocoding.NewCachedProvider(geocoder, rdb, cfg.Geocoding.CacheTTL, log.Component("geocoding"), m)
		}
		cancel()
	}

	taxonomy := catalog.Default()
	guard := tenancy.NewGuard(store)

	authUC := auth.NewAuthUseCase(merchantRepo, provider, geocoder, log.Component("auth"), cfg.Geocoding.Timeout)
	productUC := usecase.NewProductUseCase(guard, taxonomy, merchantRepo, log.Component("catalog"))
	dashboardUC := appanalytics.NewDashboardUseCase(guard)
	exportUC := export.NewExportUseCase(guard, merchantRepo, map[string]ports.CatalogRenderer{
		export.FormatXML: xmlexport.NewRenderer(),
		export.FormatPDF: infrapdf.NewMarotoCatalogGenerator(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
		Taxonomy:    taxonomy,
		Metrics:     m,
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

// openStores construye el almacén del catálogo y el repositorio de comercios según STORE_DRIVER.
func openStores(ctx context.Context, cfg *config.Config) (tenancy.CatalogStore, repository.MerchantRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return memstore.NewCatalogStore(), memstore.NewMerchantRepository(), func() {}, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return postgres.NewCatalogStore(pool), postgres.NewMerchantRepository(pool), pool.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("driver desconocido %q", cfg.Store.Driver)
}
