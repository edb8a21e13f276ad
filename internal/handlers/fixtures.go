package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/saluvia/internal/fixtures"
)

// FixtureHandler serves the bundled showcase catalog.
type FixtureHandler struct {
	catalog *fixtures.Catalog
}

// NewFixtureHandler constructs FixtureHandler.
func NewFixtureHandler(catalog *fixtures.Catalog) *FixtureHandler {
	return &FixtureHandler{catalog: catalog}
}

// ListCategories returns all showcase categories.
func (h *FixtureHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Categories())
}

// GetCategory returns a showcase category with its products.
func (h *FixtureHandler) GetCategory(c *fiber.Ctx) error {
	slug := c.Params("slug")
	category, ok := h.catalog.CategoryBySlug(slug)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	return c.JSON(fiber.Map{
		"category": category,
		"products": h.catalog.ProductsByCategory(slug),
	})
}

// GetProduct returns a showcase product by slug.
func (h *FixtureHandler) GetProduct(c *fiber.Ctx) error {
	product, ok := h.catalog.ProductBySlug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}
