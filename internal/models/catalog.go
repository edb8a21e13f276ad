package models

import "time"

// Category is a top-level catalog grouping. Category is the key used in URLs
// and the only join key to subcategories.
type Category struct {
	ID          string `json:"_id,omitempty"`
	Category    string `json:"category"`
	Title       string `json:"title,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
}

// Subcategory groups products inside a category. It references its parent by
// the category key value.
type Subcategory struct {
	ID          string         `json:"_id,omitempty"`
	Subcategory string         `json:"subcategory"`
	Slug        string         `json:"slug,omitempty"`
	Title       string         `json:"title,omitempty"`
	URL         string         `json:"url,omitempty"`
	Category    string         `json:"category"`
	Description string         `json:"description,omitempty"`
	ImagePath   string         `json:"image_path,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Product is a catalog item. Subcategory, SubcategoryID and SubcategorySlug
// are soft references; any one of them may tie the product to a subcategory.
type Product struct {
	ID              string     `json:"_id,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Price           float64    `json:"price"`
	ImagePaths      []string   `json:"image_paths,omitempty"`
	ImagePath       string     `json:"image_path,omitempty"`
	Slug            string     `json:"slug,omitempty"`
	Features        []string   `json:"features,omitempty"`
	Subcategory     string     `json:"subcategory,omitempty"`
	SubcategoryID   string     `json:"subcategoryId,omitempty"`
	SubcategorySlug string     `json:"subcategorySlug,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// CategorySummary is the navigation projection of a category.
type CategorySummary struct {
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
	Category  string `json:"category"`
}

// SubcategorySummary is the listing projection of a subcategory.
type SubcategorySummary struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	ImagePath   string `json:"image_path"`
}

// CategoryDetail pairs a category with its subcategories.
type CategoryDetail struct {
	Category      Category      `json:"category"`
	Subcategories []Subcategory `json:"subcategories"`
}

// SubcategoryDetail is the subcategory as returned by the subcategory page.
type SubcategoryDetail struct {
	ID          string         `json:"_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ImagePath   string         `json:"image_path"`
	ImageURL    string         `json:"image_url"`
	Category    string         `json:"category"`
	Slug        string         `json:"slug"`
	Metadata    map[string]any `json:"metadata"`
}

// ProductCard is a product shaped for listing with every optional field defaulted.
type ProductCard struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImagePath   string    `json:"image_path"`
	ImageURL    string    `json:"image_url"`
	Slug        string    `json:"slug"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SubcategoryPage is the response envelope of the subcategory route.
type SubcategoryPage struct {
	Success     bool              `json:"success"`
	Subcategory SubcategoryDetail `json:"subcategory"`
	Products    []ProductCard     `json:"products"`
	Count       int               `json:"count"`
}
