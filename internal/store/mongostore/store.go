// Package mongostore serves the catalog from MongoDB collections
// "categories", "subcategories" and "products".
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/example/saluvia/internal/catalog"
	"github.com/example/saluvia/internal/models"
)

const (
	categoriesCollection    = "categories"
	subcategoriesCollection = "subcategories"
	productsCollection      = "products"
)

// Store is a catalog.Store backed by a pooled mongo.Client. The client is
// owned by the caller.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New constructs Store over the named database.
func New(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// Open starts a session that scopes the queries of one request.
func (s *Store) Open(ctx context.Context) (catalog.Conn, error) {
	sess, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	return &conn{db: s.db, sess: sess}, nil
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

type conn struct {
	db   *mongo.Database
	sess mongo.Session
}

func (c *conn) scoped(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, c.sess)
}

func (c *conn) FindCategory(ctx context.Context, key string) (*models.Category, error) {
	var doc categoryDoc
	err := c.db.Collection(categoriesCollection).
		FindOne(c.scoped(ctx), bson.M{"category": key}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	category := doc.model()
	return &category, nil
}

func (c *conn) FindSubcategoriesByCategory(ctx context.Context, key string) ([]models.Subcategory, error) {
	ctx = c.scoped(ctx)
	cur, err := c.db.Collection(subcategoriesCollection).Find(ctx, bson.M{"category": key})
	if err != nil {
		return nil, err
	}
	var docs []subcategoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.Subcategory, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].model())
	}
	return out, nil
}

func (c *conn) FindSubcategory(ctx context.Context, l catalog.Lookup) (*models.Subcategory, error) {
	var doc subcategoryDoc
	err := c.db.Collection(subcategoriesCollection).
		FindOne(c.scoped(ctx), subcategoryFilter(l)).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sub := doc.model()
	return &sub, nil
}

func (c *conn) FindProducts(ctx context.Context, refs []catalog.ProductRef) ([]models.Product, error) {
	if len(refs) == 0 {
		return []models.Product{}, nil
	}

	ctx = c.scoped(ctx)
	cur, err := c.db.Collection(productsCollection).
		Find(ctx, productFilter(refs), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].model())
	}
	return out, nil
}

func (c *conn) ListCategories(ctx context.Context) ([]models.CategorySummary, error) {
	ctx = c.scoped(ctx)
	cur, err := c.db.Collection(categoriesCollection).
		Find(ctx, bson.M{}, options.Find().SetProjection(categorySummaryProjection))
	if err != nil {
		return nil, err
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.CategorySummary, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].summary())
	}
	return out, nil
}

func (c *conn) ListSubcategories(ctx context.Context) ([]models.SubcategorySummary, error) {
	ctx = c.scoped(ctx)
	cur, err := c.db.Collection(subcategoriesCollection).
		Find(ctx, bson.M{}, options.Find().SetProjection(subcategorySummaryProjection))
	if err != nil {
		return nil, err
	}
	var docs []subcategoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.SubcategorySummary, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].summary())
	}
	return out, nil
}

// Close ends the session; its server-side resources return to the pool.
func (c *conn) Close(ctx context.Context) error {
	c.sess.EndSession(ctx)
	return nil
}
