package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/saluvia/internal/catalog"
)

func TestSubcategoryFilter(t *testing.T) {
	t.Run("slug and name only", func(t *testing.T) {
		got := subcategoryFilter(catalog.NewLookup("ECG-Monitors"))
		assert.Equal(t, bson.M{"$or": bson.A{
			bson.M{"slug": "ECG-Monitors"},
			bson.M{"subcategory": "ECG Monitors"},
		}}, got)
	})

	t.Run("object id", func(t *testing.T) {
		oid := primitive.NewObjectID()
		got := subcategoryFilter(catalog.NewLookup(oid.Hex()))
		or := got["$or"].(bson.A)
		assert.Len(t, or, 3)
		assert.Equal(t, bson.M{"_id": oid}, or[2])
	})

	t.Run("uuid stays a string", func(t *testing.T) {
		key := "3f2b6c1e-8a4d-4f7b-9c2e-1a5d6e7f8091"
		or := subcategoryFilter(catalog.NewLookup(key))["$or"].(bson.A)
		assert.Equal(t, bson.M{"_id": key}, or[2])
	})
}

func TestProductFilter(t *testing.T) {
	oid := primitive.NewObjectID()
	refs := []catalog.ProductRef{
		{Kind: catalog.RefByName, Value: "ECG Monitors"},
		{Kind: catalog.RefByID, Value: oid.Hex()},
		{Kind: catalog.RefBySlug, Value: "ecg-monitors"},
	}

	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"subcategory": "ECG Monitors"},
		bson.M{"subcategoryId": bson.M{"$in": bson.A{oid, oid.Hex()}}},
		bson.M{"subcategorySlug": "ecg-monitors"},
	}}, productFilter(refs))

	nonHex := productFilter([]catalog.ProductRef{{Kind: catalog.RefByID, Value: "legacy-7"}})
	assert.Equal(t, bson.M{"$or": bson.A{bson.M{"subcategoryId": "legacy-7"}}}, nonHex)
}
