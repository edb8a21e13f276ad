package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/saluvia/internal/fixtures"
	"github.com/example/saluvia/internal/handlers"
)

// Service is everything the API needs from the catalog read path.
type Service interface {
	handlers.CatalogService
	handlers.Pinger
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, service Service, showcase *fixtures.Catalog) {
	catalogHandler := handlers.NewCatalogHandler(service)
	healthHandler := handlers.NewHealthHandler(service)
	fixtureHandler := handlers.NewFixtureHandler(showcase)

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Catalog routes
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:category", catalogHandler.GetCategory)

	subcategories := api.Group("/subcategories")
	subcategories.Get("/", catalogHandler.ListSubcategories)
	subcategories.Get("/:subcategory", catalogHandler.GetSubcategory)

	// Bundled showcase catalog
	showcaseRoutes := api.Group("/fixtures")
	showcaseRoutes.Get("/categories", fixtureHandler.ListCategories)
	showcaseRoutes.Get("/categories/:slug", fixtureHandler.GetCategory)
	showcaseRoutes.Get("/products/:slug", fixtureHandler.GetProduct)
}
