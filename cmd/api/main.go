package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/almacen-solidario/internal/application/analytics"
	"github.com/jhoicas/almacen-solidario/internal/application/basket"
	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/application/usecase"
	"github.com/jhoicas/almacen-solidario/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-solidario/internal/interfaces/http"
	"github.com/jhoicas/almacen-solidario/pkg/config"
	"github.com/jhoicas/almacen-solidario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	basketRepo := postgres.NewBasketRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	sectorRepo := postgres.NewSectorRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Ledger.LockTimeoutMs)

	productUC := usecase.NewProductUseCase(productRepo, txRunner)
	referenceUC := usecase.NewReferenceUseCase(categoryRepo, sectorRepo, supplierRepo)
	ledgerUC := ledger.NewUseCase(txRunner, txRepo)
	basketUC := basket.NewUseCase(basketRepo, productRepo, ledgerUC)
	analyticsUC := analytics.NewUseCase(analyticsRepo)

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
		Title:    "Almacén Solidario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		ReferenceUC: referenceUC,
		LedgerUC:    ledgerUC,
		BasketUC:    basketUC,
		AnalyticsUC: analyticsUC,
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
