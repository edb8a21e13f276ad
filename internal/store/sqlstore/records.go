package sqlstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/saluvia/internal/models"
)

// BaseModel provides shared columns for all catalog tables.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// BeforeCreate ensures UUIDs are generated for new records.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Category mirrors the categories collection.
type Category struct {
	BaseModel
	Category    string `gorm:"uniqueIndex;not null"`
	Title       string
	Name        string
	Description string `gorm:"type:text"`
	ImagePath   string
}

func (Category) TableName() string { return "categories" }

// Subcategory mirrors the subcategories collection. Category holds the parent
// key by value; there is no foreign key constraint.
type Subcategory struct {
	BaseModel
	Subcategory string `gorm:"index"`
	Slug        string `gorm:"index"`
	Title       string
	URL         string
	Category    string         `gorm:"index"`
	Description string         `gorm:"type:text"`
	ImagePath   string
	Metadata    map[string]any `gorm:"type:text;serializer:json"`
}

func (Subcategory) TableName() string { return "subcategories" }

// Product mirrors the products collection with its three soft references.
type Product struct {
	BaseModel
	Name            string
	Description     string `gorm:"type:text"`
	Price           float64
	ImagePaths      []string `gorm:"type:text;serializer:json"`
	ImagePath       string
	Slug            string   `gorm:"index"`
	Features        []string `gorm:"type:text;serializer:json"`
	Subcategory     string   `gorm:"index"`
	SubcategoryID   string   `gorm:"index"`
	SubcategorySlug string   `gorm:"index"`
}

func (Product) TableName() string { return "products" }

func (r *Category) model() models.Category {
	return models.Category{
		ID:          r.ID.String(),
		Category:    r.Category,
		Title:       r.Title,
		Name:        r.Name,
		Description: r.Description,
		ImagePath:   r.ImagePath,
	}
}

func (r *Subcategory) model() models.Subcategory {
	return models.Subcategory{
		ID:          r.ID.String(),
		Subcategory: r.Subcategory,
		Slug:        r.Slug,
		Title:       r.Title,
		URL:         r.URL,
		Category:    r.Category,
		Description: r.Description,
		ImagePath:   r.ImagePath,
		Metadata:    r.Metadata,
	}
}

func (r *Product) model() models.Product {
	p := models.Product{
		ID:              r.ID.String(),
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		ImagePaths:      r.ImagePaths,
		ImagePath:       r.ImagePath,
		Slug:            r.Slug,
		Features:        r.Features,
		Subcategory:     r.Subcategory,
		SubcategoryID:   r.SubcategoryID,
		SubcategorySlug: r.SubcategorySlug,
	}
	if !r.CreatedAt.IsZero() {
		created := r.CreatedAt
		p.CreatedAt = &created
	}
	return p
}
