// Package memstore is an in-memory catalog.Store. It evaluates lookups with
// the same OR semantics as the database backends and records how it was used,
// which makes it the store of choice for service and handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/example/saluvia/internal/catalog"
	"github.com/example/saluvia/internal/models"
)

// Query names accepted by Fail and Queries.
const (
	OpFindCategory                = "FindCategory"
	OpFindSubcategoriesByCategory = "FindSubcategoriesByCategory"
	OpFindSubcategory             = "FindSubcategory"
	OpFindProducts                = "FindProducts"
	OpListCategories              = "ListCategories"
	OpListSubcategories           = "ListSubcategories"
)

// Store holds catalog documents in memory.
type Store struct {
	mu            sync.Mutex
	categories    []models.Category
	subcategories []models.Subcategory
	products      []models.Product

	openErr  error
	pingErr  error
	closeErr error
	failures map[string]error

	opens   int
	closes  int
	queries map[string]int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		failures: make(map[string]error),
		queries:  make(map[string]int),
	}
}

// AddCategories appends category documents.
func (s *Store) AddCategories(items ...models.Category) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, items...)
	return s
}

// AddSubcategories appends subcategory documents.
func (s *Store) AddSubcategories(items ...models.Subcategory) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subcategories = append(s.subcategories, items...)
	return s
}

// AddProducts appends product documents.
func (s *Store) AddProducts(items ...models.Product) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, items...)
	return s
}

// FailOpen makes Open return err.
func (s *Store) FailOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

// FailPing makes Ping return err.
func (s *Store) FailPing(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pingErr = err
}

// FailClose makes Conn.Close return err.
func (s *Store) FailClose(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeErr = err
}

// Fail makes the named query return err.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Opens reports how many connections were handed out.
func (s *Store) Opens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens
}

// Closes reports how many times Conn.Close was called.
func (s *Store) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// Queries reports how many times the named query ran, failed runs included.
func (s *Store) Queries(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[op]
}

// TotalQueries reports the number of queries of any kind.
func (s *Store) TotalQueries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.queries {
		total += n
	}
	return total
}

// Open implements catalog.Store.
func (s *Store) Open(ctx context.Context) (catalog.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opens++
	return &conn{store: s}, nil
}

// Ping implements catalog.Store.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pingErr
}

type conn struct {
	store *Store
}

// begin records the query and returns the injected failure, if any. The
// caller holds the store lock until it returns.
func (c *conn) begin(ctx context.Context, op string) error {
	c.store.mu.Lock()
	c.store.queries[op]++
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.store.failures[op]
}

func (c *conn) FindCategory(ctx context.Context, key string) (*models.Category, error) {
	defer c.store.mu.Unlock()
	if err := c.begin(ctx, OpFindCategory); err != nil {
		return nil, err
	}
	for i := range c.store.categories {
		if c.store.categories[i].Category == key {
			found := c.store.categories[i]
			return &found, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (c *conn) FindSubcategoriesByCategory(ctx context.Context, key string) ([]models.Subcategory, error) {
	defer c.store.mu.Unlock()
	if err := c.begin(ctx, OpFindSubcategoriesByCategory); err != nil {
		return nil, err
	}
	out := []models.Subcategory{}
	for _, sub := range c.store.subcategories {
		if sub.Category == key {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (c *conn) FindSubcategory(ctx context.Context, l catalog.Lookup) (*models.Subcategory, error) {
	defer c.store.mu.Unlock()
	if err := c.begin(ctx, OpFindSubcategory); err != nil {
		return nil, err
	}
	for i := range c.store.subcategories {
		if l.Matches(&c.store.subcategories[i]) {
			found := c.store.subcategories[i]
			return &found, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (c *conn) FindProducts(ctx context.Context, refs []catalog.ProductRef) ([]models.Product, error) {
	defer c.store.mu.Unlock()
	if err := c.begin(ctx, OpFindProducts); err != nil {
		return nil, err
	}
	out := []models.Product{}
	for i := range c.store.products {
		for _, ref := range refs {
			if ref.Matches(&c.store.products[i]) {
				out = append(out, c.store.products[i])
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt, out[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out, nil
}

func (c *conn) ListCategories(ctx context.Context) ([]models.CategorySummary, error) {
	defer c.store.mu.Unlock()
	if err := c.begin(ctx, OpListCategories); err != nil {
		return nil, err
	}
	out := make([]models.CategorySummary, 0, len(c.store.categories))
	for _, cat := range c.store.categories {
		out = append(out, models.CategorySummary{
			Name:      cat.Title,
			ImagePath: cat.ImagePath,
			Category:  cat.Category,
		})
	}
	return out, nil
}

func (c *conn) ListSubcategories(ctx context.Context) ([]models.SubcategorySummary, error) {
	defer c.store.mu.Unlock()
	if err := c.begin(ctx, OpListSubcategories); err != nil {
		return nil, err
	}
	out := make([]models.SubcategorySummary, 0, len(c.store.subcategories))
	for _, sub := range c.store.subcategories {
		out = append(out, models.SubcategorySummary{
			ID:          sub.ID,
			Slug:        sub.Slug,
			URL:         sub.URL,
			Title:       sub.Title,
			Description: sub.Description,
			Category:    sub.Category,
			Subcategory: sub.Subcategory,
			ImagePath:   sub.ImagePath,
		})
	}
	return out, nil
}

func (c *conn) Close(ctx context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.closes++
	return c.store.closeErr
}
