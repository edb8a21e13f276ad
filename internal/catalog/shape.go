package catalog

import (
	"time"

	"github.com/example/saluvia/internal/models"
)

// CanonicalImage picks the product's primary image: the first non-empty
// element of image_paths, then the scalar image path, then "".
func CanonicalImage(p *models.Product) string {
	if len(p.ImagePaths) > 0 && p.ImagePaths[0] != "" {
		return p.ImagePaths[0]
	}
	return p.ImagePath
}

func shapeProduct(p *models.Product, now time.Time) models.ProductCard {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	createdAt := now
	if p.CreatedAt != nil && !p.CreatedAt.IsZero() {
		createdAt = *p.CreatedAt
	}
	image := CanonicalImage(p)

	return models.ProductCard{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImagePath:   image,
		ImageURL:    NormalizeImagePath(image),
		Slug:        p.Slug,
		Features:    features,
		CreatedAt:   createdAt,
	}
}

func shapeSubcategory(sub *models.Subcategory) models.SubcategoryDetail {
	title := sub.Title
	if title == "" {
		title = sub.Subcategory
	}
	metadata := sub.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return models.SubcategoryDetail{
		ID:          sub.ID,
		Title:       title,
		Description: sub.Description,
		ImagePath:   sub.ImagePath,
		ImageURL:    NormalizeImagePath(sub.ImagePath),
		Category:    sub.Category,
		Slug:        sub.Slug,
		Metadata:    metadata,
	}
}
