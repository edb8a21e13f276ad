package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/saluvia/internal/fixtures"
	"github.com/example/saluvia/internal/handlers"
)

func newFixtureApp(t *testing.T) *fiber.App {
	t.Helper()
	showcase, err := fixtures.Default()
	require.NoError(t, err)

	h := handlers.NewFixtureHandler(showcase)
	app := fiber.New()
	app.Get("/categories", h.ListCategories)
	app.Get("/categories/:slug", h.GetCategory)
	app.Get("/products/:slug", h.GetProduct)
	return app
}

func TestFixtureCategories(t *testing.T) {
	app := newFixtureApp(t)

	var list []fixtures.Category
	assert.Equal(t, fiber.StatusOK, get(t, app, "/categories", &list))
	assert.Len(t, list, 3)

	var detail struct {
		Category fixtures.Category  `json:"category"`
		Products []fixtures.Product `json:"products"`
	}
	assert.Equal(t, fiber.StatusOK, get(t, app, "/categories/cardiology", &detail))
	assert.Equal(t, "Cardiology", detail.Category.Name)
	assert.Len(t, detail.Products, 2)

	var missing map[string]any
	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/categories/oncology", &missing))
	assert.Equal(t, "Category not found", missing["error"])
}

func TestFixtureProduct(t *testing.T) {
	app := newFixtureApp(t)

	var product fixtures.Product
	assert.Equal(t, fiber.StatusOK, get(t, app, "/products/aed-pro-200", &product))
	assert.Equal(t, "AED Pro 200", product.Name)
	assert.Equal(t, "cardiology", product.Category)

	var missing map[string]any
	assert.Equal(t, fiber.StatusNotFound, get(t, app, "/products/unknown", &missing))
	assert.Equal(t, "Product not found", missing["error"])
}
