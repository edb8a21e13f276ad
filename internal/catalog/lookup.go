package catalog

import (
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/saluvia/internal/models"
)

// Lookup holds the candidate keys derived from one path segment. A document
// matches the lookup when any candidate matches.
type Lookup struct {
	// Slug is the raw segment, compared against the slug field.
	Slug string
	// Name is the segment with every '-' replaced by a space, compared
	// case-sensitively against the subcategory name.
	Name string
	// ID is the segment when it is identifier-shaped. HasID reports whether
	// it is set.
	ID    string
	HasID bool
}

// NewLookup builds the lookup candidates for key. It never fails: a key that
// is not identifier-shaped simply yields no ID candidate.
func NewLookup(key string) Lookup {
	l := Lookup{
		Slug: key,
		Name: strings.ReplaceAll(key, "-", " "),
	}
	if IsDocumentID(key) {
		l.ID = key
		l.HasID = true
	}
	return l
}

// IsDocumentID reports whether s is a 24-hex ObjectID or a UUID.
func IsDocumentID(s string) bool {
	return primitive.IsValidObjectID(s) || uuid.Validate(s) == nil
}

// RefKind names which soft reference a ProductRef matches on.
type RefKind int

const (
	RefByName RefKind = iota // product.subcategory == subcategory name
	RefByID                  // product.subcategoryId == subcategory id
	RefBySlug                // product.subcategorySlug == subcategory slug
)

func (k RefKind) String() string {
	switch k {
	case RefByName:
		return "byName"
	case RefByID:
		return "byId"
	case RefBySlug:
		return "bySlug"
	default:
		return "unknown"
	}
}

// ProductRef is one arm of the product membership test. Stores resolve a
// slice of refs as a single OR query.
type ProductRef struct {
	Kind  RefKind
	Value string
}

// MembershipRefs returns the references that tie products to sub. The slug
// arm falls back to the key the subcategory was requested with. Empty values
// are dropped so that products with missing fields never match by accident.
func MembershipRefs(sub *models.Subcategory, key string) []ProductRef {
	refs := make([]ProductRef, 0, 3)
	if sub.Subcategory != "" {
		refs = append(refs, ProductRef{Kind: RefByName, Value: sub.Subcategory})
	}
	if sub.ID != "" {
		refs = append(refs, ProductRef{Kind: RefByID, Value: sub.ID})
	}
	slug := sub.Slug
	if slug == "" {
		slug = key
	}
	if slug != "" {
		refs = append(refs, ProductRef{Kind: RefBySlug, Value: slug})
	}
	return refs
}

// Matches reports whether p satisfies ref. Backends that filter in memory use it.
func (ref ProductRef) Matches(p *models.Product) bool {
	switch ref.Kind {
	case RefByName:
		return p.Subcategory == ref.Value
	case RefByID:
		return p.SubcategoryID == ref.Value
	case RefBySlug:
		return p.SubcategorySlug == ref.Value
	default:
		return false
	}
}

// Matches reports whether sub satisfies any candidate in l.
func (l Lookup) Matches(sub *models.Subcategory) bool {
	if sub.Slug != "" && sub.Slug == l.Slug {
		return true
	}
	if sub.Subcategory == l.Name {
		return true
	}
	return l.HasID && sub.ID == l.ID
}
