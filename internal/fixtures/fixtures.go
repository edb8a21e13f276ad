// Package fixtures serves the static showcase catalog bundled with the
// binary. It is independent of the live store.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/gosimple/slug"
)

//go:embed data/*.json
var bundled embed.FS

// Category is a showcase category.
type Category struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Product is a showcase product. Category holds the category slug.
type Product struct {
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Price       float64           `json:"price"`
	Image       string            `json:"image"`
	Description string            `json:"description"`
	Features    []string          `json:"features"`
	Specs       map[string]string `json:"specs"`
}

// Catalog is an immutable, in-memory fixture set.
type Catalog struct {
	categories []Category
	products   []Product
}

// Default loads the bundled fixture set.
func Default() (*Catalog, error) {
	return Load(bundled)
}

// Load reads data/categories.json and data/products.json from fsys. Entries
// without a slug get one derived from their name.
func Load(fsys fs.FS) (*Catalog, error) {
	var categories []Category
	if err := readJSON(fsys, "data/categories.json", &categories); err != nil {
		return nil, err
	}
	var products []Product
	if err := readJSON(fsys, "data/products.json", &products); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(categories))
	for i := range categories {
		if categories[i].Slug == "" {
			categories[i].Slug = slug.Make(categories[i].Name)
		}
		if seen[categories[i].Slug] {
			return nil, fmt.Errorf("fixtures: duplicate category slug %q", categories[i].Slug)
		}
		seen[categories[i].Slug] = true
	}

	seen = make(map[string]bool, len(products))
	for i := range products {
		p := &products[i]
		if p.Slug == "" {
			p.Slug = slug.Make(p.Name)
		}
		if seen[p.Slug] {
			return nil, fmt.Errorf("fixtures: duplicate product slug %q", p.Slug)
		}
		seen[p.Slug] = true
		if p.Features == nil {
			p.Features = []string{}
		}
		if p.Specs == nil {
			p.Specs = map[string]string{}
		}
	}

	return &Catalog{categories: categories, products: products}, nil
}

func readJSON(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("fixtures: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("fixtures: decode %s: %w", name, err)
	}
	return nil
}

// Categories returns every category in file order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// CategoryBySlug returns the category with the given slug.
func (c *Catalog) CategoryBySlug(s string) (Category, bool) {
	for _, category := range c.categories {
		if category.Slug == s {
			return category, true
		}
	}
	return Category{}, false
}

// ProductsByCategory returns the products filed under the category slug.
func (c *Catalog) ProductsByCategory(s string) []Product {
	out := []Product{}
	for _, p := range c.products {
		if p.Category == s {
			out = append(out, p)
		}
	}
	return out
}

// ProductBySlug returns the product with the given slug.
func (c *Catalog) ProductBySlug(s string) (Product, bool) {
	for _, p := range c.products {
		if p.Slug == s {
			return p, true
		}
	}
	return Product{}, false
}
