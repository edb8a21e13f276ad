package mongostore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/saluvia/internal/catalog"
)

// subcategoryFilter matches a subcategory by slug, by space-normalized name or
// by _id when the key is identifier-shaped.
func subcategoryFilter(l catalog.Lookup) bson.M {
	or := bson.A{
		bson.M{"slug": l.Slug},
		bson.M{"subcategory": l.Name},
	}
	if l.HasID {
		if oid, err := primitive.ObjectIDFromHex(l.ID); err == nil {
			or = append(or, bson.M{"_id": oid})
		} else {
			or = append(or, bson.M{"_id": l.ID})
		}
	}
	return bson.M{"$or": or}
}

// productFilter expresses the membership test as one $or so that a product
// matching any single reference is returned.
func productFilter(refs []catalog.ProductRef) bson.M {
	or := make(bson.A, 0, len(refs))
	for _, ref := range refs {
		switch ref.Kind {
		case catalog.RefByName:
			or = append(or, bson.M{"subcategory": ref.Value})
		case catalog.RefByID:
			// subcategoryId is written as an ObjectID by the admin tooling but
			// some imports stored its hex form.
			if oid, err := primitive.ObjectIDFromHex(ref.Value); err == nil {
				or = append(or, bson.M{"subcategoryId": bson.M{"$in": bson.A{oid, ref.Value}}})
			} else {
				or = append(or, bson.M{"subcategoryId": ref.Value})
			}
		case catalog.RefBySlug:
			or = append(or, bson.M{"subcategorySlug": ref.Value})
		}
	}
	return bson.M{"$or": or}
}

var (
	categorySummaryProjection = bson.M{
		"_id":        0,
		"title":      1,
		"image_path": 1,
		"category":   1,
	}
	subcategorySummaryProjection = bson.M{
		"_id":         1,
		"slug":        1,
		"url":         1,
		"title":       1,
		"description": 1,
		"category":    1,
		"subcategory": 1,
		"image_path":  1,
	}
	newestFirst = bson.D{{Key: "createdAt", Value: -1}}
)
