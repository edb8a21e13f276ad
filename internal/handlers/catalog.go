package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/example/saluvia/internal/catalog"
	"github.com/example/saluvia/internal/logging"
	"github.com/example/saluvia/internal/middleware"
	"github.com/example/saluvia/internal/models"
)

// CatalogService is the read path the catalog routes are served from.
type CatalogService interface {
	ResolveCategory(ctx context.Context, key string) (*models.CategoryDetail, error)
	ResolveSubcategory(ctx context.Context, key string) (*models.SubcategoryPage, error)
	ListCategories(ctx context.Context) ([]models.CategorySummary, error)
	ListSubcategories(ctx context.Context) ([]models.SubcategorySummary, error)
}

// CatalogHandler serves categories and subcategories.
type CatalogHandler struct {
	service CatalogService
	log     *log.Entry
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     logging.WithComponent("catalog_handler"),
	}
}

func (h *CatalogHandler) logFailure(c *fiber.Ctx, err error, msg string) {
	h.log.WithError(err).WithFields(log.Fields{
		"request_id": middleware.RequestID(c),
		"path":       c.Path(),
	}).Error(msg)
}

// ListCategories returns every category as {name, image_path, category}.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		h.logFailure(c, err, "failed to fetch categories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}

	return c.JSON(categories)
}

// GetCategory returns a category and its subcategories.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	detail, err := h.service.ResolveCategory(c.UserContext(), c.Params("category"))
	switch {
	case err == nil:
		return c.JSON(detail)
	case errors.Is(err, catalog.ErrInvalidKey):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category parameter is required"})
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	default:
		h.logFailure(c, err, "failed to fetch category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch category"})
	}
}

// ListSubcategories returns every subcategory in its listing projection.
func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	subcategories, err := h.service.ListSubcategories(c.UserContext())
	if err != nil {
		h.logFailure(c, err, "failed to fetch subcategories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subcategories"})
	}

	return c.JSON(subcategories)
}

// GetSubcategory returns a subcategory with its products, newest first.
func (h *CatalogHandler) GetSubcategory(c *fiber.Ctx) error {
	page, err := h.service.ResolveSubcategory(c.UserContext(), c.Params("subcategory"))
	switch {
	case err == nil:
		return c.JSON(page)
	case errors.Is(err, catalog.ErrInvalidKey):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Subcategory parameter is required",
		})
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Subcategory not found",
		})
	default:
		h.logFailure(c, err, "failed to fetch subcategory data")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch subcategory data",
			"details": err.Error(),
		})
	}
}
