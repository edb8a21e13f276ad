// Package sqlstore serves the catalog from relational tables through GORM.
// It is used when the catalog has been mirrored into Postgres.
package sqlstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/saluvia/internal/catalog"
	"github.com/example/saluvia/internal/models"
)

// Store is a catalog.Store over a *gorm.DB pool owned by the caller.
type Store struct {
	db *gorm.DB
}

// New constructs Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	migrations := []interface{}{
		&Category{},
		&Subcategory{},
		&Product{},
	}

	for _, migration := range migrations {
		if err := db.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

// Open begins a transaction so the queries of one request share a single
// pooled connection and snapshot. Close rolls it back.
func (s *Store) Open(ctx context.Context) (catalog.Conn, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &conn{tx: tx}, nil
}

// Ping checks a pooled connection answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type conn struct {
	tx *gorm.DB
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.ErrNotFound
	}
	return err
}

func (c *conn) FindCategory(ctx context.Context, key string) (*models.Category, error) {
	var rec Category
	if err := c.tx.WithContext(ctx).Where("category = ?", key).Take(&rec).Error; err != nil {
		return nil, notFound(err)
	}
	category := rec.model()
	return &category, nil
}

func (c *conn) FindSubcategoriesByCategory(ctx context.Context, key string) ([]models.Subcategory, error) {
	var recs []Subcategory
	if err := c.tx.WithContext(ctx).Where("category = ?", key).Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]models.Subcategory, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].model())
	}
	return out, nil
}

// FindSubcategory returns the oldest row matching any candidate.
func (c *conn) FindSubcategory(ctx context.Context, l catalog.Lookup) (*models.Subcategory, error) {
	query := c.tx.WithContext(ctx).
		Where("slug = ?", l.Slug).
		Or("subcategory = ?", l.Name)
	if l.HasID {
		if id, err := uuid.Parse(l.ID); err == nil {
			query = query.Or("id = ?", id)
		}
	}

	var rec Subcategory
	if err := query.Order("created_at asc").Take(&rec).Error; err != nil {
		return nil, notFound(err)
	}
	sub := rec.model()
	return &sub, nil
}

var refColumns = map[catalog.RefKind]string{
	catalog.RefByName: "subcategory = ?",
	catalog.RefByID:   "subcategory_id = ?",
	catalog.RefBySlug: "subcategory_slug = ?",
}

func (c *conn) FindProducts(ctx context.Context, refs []catalog.ProductRef) ([]models.Product, error) {
	query := c.tx.WithContext(ctx)
	matched := 0
	for _, ref := range refs {
		column, ok := refColumns[ref.Kind]
		if !ok {
			continue
		}
		if matched == 0 {
			query = query.Where(column, ref.Value)
		} else {
			query = query.Or(column, ref.Value)
		}
		matched++
	}
	if matched == 0 {
		return []models.Product{}, nil
	}

	var recs []Product
	if err := query.Order("created_at desc").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].model())
	}
	return out, nil
}

func (c *conn) ListCategories(ctx context.Context) ([]models.CategorySummary, error) {
	var recs []Category
	if err := c.tx.WithContext(ctx).
		Select("title", "image_path", "category").
		Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]models.CategorySummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.CategorySummary{
			Name:      rec.Title,
			ImagePath: rec.ImagePath,
			Category:  rec.Category,
		})
	}
	return out, nil
}

func (c *conn) ListSubcategories(ctx context.Context) ([]models.SubcategorySummary, error) {
	var recs []Subcategory
	if err := c.tx.WithContext(ctx).
		Select("id", "slug", "url", "title", "description", "category", "subcategory", "image_path").
		Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]models.SubcategorySummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.SubcategorySummary{
			ID:          rec.ID.String(),
			Slug:        rec.Slug,
			URL:         rec.URL,
			Title:       rec.Title,
			Description: rec.Description,
			Category:    rec.Category,
			Subcategory: rec.Subcategory,
			ImagePath:   rec.ImagePath,
		})
	}
	return out, nil
}

func (c *conn) Close(ctx context.Context) error {
	return c.tx.Rollback().Error
}
