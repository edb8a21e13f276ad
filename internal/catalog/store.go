package catalog

import (
	"context"

	"github.com/example/saluvia/internal/models"
)

// Store hands out per-call connections to the catalog document store.
// Implementations may pool underneath; every Conn returned by Open must be
// closed by the caller.
type Store interface {
	Open(ctx context.Context) (Conn, error)
	Ping(ctx context.Context) error
}

// Conn is a scoped connection used for the queries of a single request.
// Find methods return ErrNotFound when nothing matches; list methods return
// an empty slice instead.
type Conn interface {
	FindCategory(ctx context.Context, key string) (*models.Category, error)
	FindSubcategoriesByCategory(ctx context.Context, key string) ([]models.Subcategory, error)
	// FindSubcategory returns the first subcategory matching any candidate of l.
	FindSubcategory(ctx context.Context, l Lookup) (*models.Subcategory, error)
	// FindProducts returns the products matching any of refs, newest first.
	FindProducts(ctx context.Context, refs []ProductRef) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.CategorySummary, error)
	ListSubcategories(ctx context.Context) ([]models.SubcategorySummary, error)
	Close(ctx context.Context) error
}
