package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-solidario/internal/application/analytics"
	"github.com/jhoicas/almacen-solidario/internal/application/basket"
	"github.com/jhoicas/almacen-solidario/internal/application/ledger"
	"github.com/jhoicas/almacen-solidario/internal/application/usecase"
	"github.com/jhoicas/almacen-solidario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	ReferenceUC *usecase.ReferenceUseCase
	LedgerUC    *ledger.UseCase
	BasketUC    *basket.UseCase
	AnalyticsUC *analytics.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Productos (catálogo)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LedgerUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/recompute-stock", productHandler.RecomputeStock)

	// Entradas y salidas: mismo handler, montado por tipo de movimiento
	registerTransactionRoutes(api.Group("/entries"), NewTransactionHandler(deps.LedgerUC, entity.KindEntry))
	registerTransactionRoutes(api.Group("/exits"), NewTransactionHandler(deps.LedgerUC, entity.KindExit))

	// Cestas de donación
	baskets := api.Group("/baskets")
	basketHandler := NewBasketHandler(deps.BasketUC)
	baskets.Post("/", basketHandler.Create)
	baskets.Get("/", basketHandler.List)
	baskets.Get("/:id", basketHandler.GetByID)
	baskets.Put("/:id", basketHandler.Update)
	baskets.Delete("/:id", basketHandler.Delete)
	baskets.Post("/:id/donate", basketHandler.Donate)

	// Dashboard operativo (solo lectura)
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	dashboard.Get("/critical-stock", dashboardHandler.CriticalStock)
	dashboard.Get("/near-expiration", dashboardHandler.NearExpiration)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Catálogos auxiliares
	referenceHandler := NewReferenceHandler(deps.ReferenceUC)
	categories := api.Group("/categories")
	categories.Post("/", referenceHandler.CreateCategory)
	categories.Get("/", referenceHandler.ListCategories)
	categories.Put("/:id", referenceHandler.UpdateCategory)
	categories.Delete("/:id", referenceHandler.DeleteCategory)

	sectors := api.Group("/sectors")
	sectors.Post("/", referenceHandler.CreateSector)
	sectors.Get("/", referenceHandler.ListSectors)
	sectors.Put("/:id", referenceHandler.UpdateSector)
	sectors.Delete("/:id", referenceHandler.DeleteSector)

	suppliers := api.Group("/suppliers")
	suppliers.Post("/", referenceHandler.CreateSupplier)
	suppliers.Get("/", referenceHandler.ListSuppliers)
	suppliers.Put("/:id", referenceHandler.UpdateSupplier)
	suppliers.Delete("/:id", referenceHandler.DeleteSupplier)
}

func registerTransactionRoutes(g fiber.Router, h *TransactionHandler) {
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
