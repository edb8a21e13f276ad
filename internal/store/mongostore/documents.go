package mongostore

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/saluvia/internal/models"
)

// Documents are schema-on-read: identifiers, prices, image lists and
// timestamps are decoded raw and converted leniently so that one malformed
// field never fails a whole listing.

type categoryDoc struct {
	ID          bson.RawValue `bson:"_id,omitempty"`
	Category    bson.RawValue `bson:"category,omitempty"`
	Title       bson.RawValue `bson:"title,omitempty"`
	Name        bson.RawValue `bson:"name,omitempty"`
	Description bson.RawValue `bson:"description,omitempty"`
	ImagePath   bson.RawValue `bson:"image_path,omitempty"`
}

func (d *categoryDoc) model() models.Category {
	return models.Category{
		ID:          idString(d.ID),
		Category:    str(d.Category),
		Title:       str(d.Title),
		Name:        str(d.Name),
		Description: str(d.Description),
		ImagePath:   str(d.ImagePath),
	}
}

func (d *categoryDoc) summary() models.CategorySummary {
	return models.CategorySummary{
		Name:      str(d.Title),
		ImagePath: str(d.ImagePath),
		Category:  str(d.Category),
	}
}

type subcategoryDoc struct {
	ID          bson.RawValue `bson:"_id,omitempty"`
	Subcategory bson.RawValue `bson:"subcategory,omitempty"`
	Slug        bson.RawValue `bson:"slug,omitempty"`
	Title       bson.RawValue `bson:"title,omitempty"`
	URL         bson.RawValue `bson:"url,omitempty"`
	Category    bson.RawValue `bson:"category,omitempty"`
	Description bson.RawValue `bson:"description,omitempty"`
	ImagePath   bson.RawValue `bson:"image_path,omitempty"`
	Metadata    bson.RawValue `bson:"metadata,omitempty"`
}

func (d *subcategoryDoc) model() models.Subcategory {
	return models.Subcategory{
		ID:          idString(d.ID),
		Subcategory: str(d.Subcategory),
		Slug:        str(d.Slug),
		Title:       str(d.Title),
		URL:         str(d.URL),
		Category:    str(d.Category),
		Description: str(d.Description),
		ImagePath:   str(d.ImagePath),
		Metadata:    document(d.Metadata),
	}
}

func (d *subcategoryDoc) summary() models.SubcategorySummary {
	return models.SubcategorySummary{
		ID:          idString(d.ID),
		Slug:        str(d.Slug),
		URL:         str(d.URL),
		Title:       str(d.Title),
		Description: str(d.Description),
		Category:    str(d.Category),
		Subcategory: str(d.Subcategory),
		ImagePath:   str(d.ImagePath),
	}
}

type productDoc struct {
	ID              bson.RawValue `bson:"_id,omitempty"`
	Name            bson.RawValue `bson:"name,omitempty"`
	Description     bson.RawValue `bson:"description,omitempty"`
	Price           bson.RawValue `bson:"price,omitempty"`
	ImagePaths      bson.RawValue `bson:"image_paths,omitempty"`
	ImagePath       bson.RawValue `bson:"image_path,omitempty"`
	Slug            bson.RawValue `bson:"slug,omitempty"`
	Features        bson.RawValue `bson:"features,omitempty"`
	Subcategory     bson.RawValue `bson:"subcategory,omitempty"`
	SubcategoryID   bson.RawValue `bson:"subcategoryId,omitempty"`
	SubcategorySlug bson.RawValue `bson:"subcategorySlug,omitempty"`
	CreatedAt       bson.RawValue `bson:"createdAt,omitempty"`
}

func (d *productDoc) model() models.Product {
	p := models.Product{
		ID:              idString(d.ID),
		Name:            str(d.Name),
		Description:     str(d.Description),
		Price:           number(d.Price),
		ImagePath:       str(d.ImagePath),
		Slug:            str(d.Slug),
		Features:        stringList(d.Features),
		Subcategory:     str(d.Subcategory),
		SubcategoryID:   idString(d.SubcategoryID),
		SubcategorySlug: str(d.SubcategorySlug),
		CreatedAt:       timestamp(d.CreatedAt),
	}

	// image_paths is usually a list but older documents store a single path.
	switch d.ImagePaths.Type {
	case bson.TypeArray:
		p.ImagePaths = stringList(d.ImagePaths)
	case bson.TypeString:
		if s := d.ImagePaths.StringValue(); s != "" {
			p.ImagePath = s
		}
	}
	return p
}

// str reads a text field. Scalars of other types are rendered as text;
// anything else reads as "".
func str(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case bson.TypeDouble:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case bson.TypeBoolean:
		return strconv.FormatBool(v.Boolean())
	default:
		return ""
	}
}

// document reads an embedded document; any other type reads as nil.
func document(v bson.RawValue) map[string]any {
	if v.Type != bson.TypeEmbeddedDocument {
		return nil
	}
	var m bson.M
	if err := v.Unmarshal(&m); err != nil {
		return nil
	}
	return map[string]any(m)
}

func idString(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeObjectID:
		return v.ObjectID().Hex()
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	default:
		return ""
	}
}

func number(v bson.RawValue) float64 {
	switch v.Type {
	case bson.TypeDouble:
		return v.Double()
	case bson.TypeInt32:
		return float64(v.Int32())
	case bson.TypeInt64:
		return float64(v.Int64())
	case bson.TypeDecimal128:
		f, err := strconv.ParseFloat(v.Decimal128().String(), 64)
		if err != nil {
			return 0
		}
		return f
	case bson.TypeString:
		f, err := strconv.ParseFloat(v.StringValue(), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func stringList(v bson.RawValue) []string {
	if v.Type != bson.TypeArray {
		return nil
	}
	values, err := v.Array().Values()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, item := range values {
		if item.Type == bson.TypeString {
			out = append(out, item.StringValue())
		}
	}
	return out
}

func timestamp(v bson.RawValue) *time.Time {
	var ts time.Time
	switch v.Type {
	case bson.TypeDateTime:
		ts = v.Time()
	case bson.TypeTimestamp:
		sec, _ := v.Timestamp()
		ts = time.Unix(int64(sec), 0)
	case bson.TypeString:
		parsed, err := time.Parse(time.RFC3339, v.StringValue())
		if err != nil {
			return nil
		}
		ts = parsed
	default:
		return nil
	}
	ts = ts.UTC()
	return &ts
}
