package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/saluvia/internal/catalog"
	"github.com/example/saluvia/internal/models"
	"github.com/example/saluvia/internal/store/memstore"
)

const ecgID = "64b7f0c2a1d3e4f5a6b7c8d9"

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(hours int) *time.Time {
	ts := fixedNow.Add(time.Duration(-hours) * time.Hour)
	return &ts
}

func seededStore() *memstore.Store {
	return memstore.New().
		AddCategories(
			models.Category{ID: "c1", Category: "cardiac", Title: "Cardiac", ImagePath: `public\images\cardiac.png`},
			models.Category{ID: "c2", Category: "respiratory", Title: "Respiratory"},
		).
		AddSubcategories(
			models.Subcategory{ID: ecgID, Category: "cardiac", Subcategory: "ECG Monitors", Slug: "ecg-monitors", Description: "<p>12-lead <b>ECG</b></p>"},
			models.Subcategory{ID: "s2", Category: "cardiac", Subcategory: "Defibrillators", Title: "AEDs & Defibrillators"},
			models.Subcategory{ID: "s3", Category: "respiratory", Subcategory: "Ventilators", Slug: "ventilators"},
		)
}

func newService(store catalog.Store) *catalog.Service {
	return catalog.NewService(store, catalog.WithClock(func() time.Time { return fixedNow }))
}

func TestResolveCategory(t *testing.T) {
	store := seededStore()
	svc := newService(store)

	detail, err := svc.ResolveCategory(context.Background(), "cardiac")
	require.NoError(t, err)
	assert.Equal(t, "cardiac", detail.Category.Category)
	assert.Equal(t, "Cardiac", detail.Category.Title)

	names := make([]string, 0, len(detail.Subcategories))
	for _, sub := range detail.Subcategories {
		assert.Equal(t, "cardiac", sub.Category)
		names = append(names, sub.Subcategory)
	}
	assert.ElementsMatch(t, []string{"ECG Monitors", "Defibrillators"}, names)
	assert.Equal(t, 1, store.Opens())
	assert.Equal(t, 1, store.Closes())
}

func TestResolveCategoryWithoutSubcategories(t *testing.T) {
	store := memstore.New().AddCategories(models.Category{Category: "imaging", Title: "Imaging"})

	detail, err := newService(store).ResolveCategory(context.Background(), "imaging")
	require.NoError(t, err)
	assert.NotNil(t, detail.Subcategories)
	assert.Empty(t, detail.Subcategories)
}

func TestResolveCategoryNotFound(t *testing.T) {
	store := seededStore()

	detail, err := newService(store).ResolveCategory(context.Background(), "neurology")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Nil(t, detail)
	assert.Zero(t, store.Queries(memstore.OpFindSubcategoriesByCategory))
	assert.Equal(t, 1, store.Closes())
}

func TestResolveRejectsBlankKeys(t *testing.T) {
	store := seededStore()
	svc := newService(store)

	for _, key := range []string{"", "   "} {
		_, err := svc.ResolveCategory(context.Background(), key)
		assert.ErrorIs(t, err, catalog.ErrInvalidKey)

		_, err = svc.ResolveSubcategory(context.Background(), key)
		assert.ErrorIs(t, err, catalog.ErrInvalidKey)
	}
	assert.Zero(t, store.Opens())
	assert.Zero(t, store.TotalQueries())
}

func TestResolveSubcategoryByEveryKeyForm(t *testing.T) {
	for _, key := range []string{"ecg-monitors", "ECG-Monitors", ecgID} {
		t.Run(key, func(t *testing.T) {
			store := seededStore()

			page, err := newService(store).ResolveSubcategory(context.Background(), key)
			require.NoError(t, err)
			assert.True(t, page.Success)
			assert.Equal(t, ecgID, page.Subcategory.ID)
			assert.Equal(t, "ECG Monitors", page.Subcategory.Title)
			assert.Equal(t, 1, store.Queries(memstore.OpFindSubcategory))
		})
	}
}

func TestResolveSubcategoryTitle(t *testing.T) {
	page, err := newService(seededStore()).ResolveSubcategory(context.Background(), "Defibrillators")
	require.NoError(t, err)
	assert.Equal(t, "AEDs & Defibrillators", page.Subcategory.Title)
	assert.Equal(t, map[string]any{}, page.Subcategory.Metadata)
}

func TestResolveSubcategoryProductMembership(t *testing.T) {
	store := seededStore().AddProducts(
		models.Product{ID: "p-name", Name: "By name", Subcategory: "ECG Monitors", CreatedAt: at(3)},
		models.Product{ID: "p-id", Name: "By id", SubcategoryID: ecgID, Subcategory: "Other", SubcategorySlug: "other", CreatedAt: at(1)},
		models.Product{ID: "p-slug", Name: "By slug", SubcategorySlug: "ecg-monitors", CreatedAt: at(2)},
		models.Product{ID: "p-other", Name: "Unrelated", Subcategory: "Ventilators", SubcategorySlug: "ventilators", CreatedAt: at(0)},
	)

	page, err := newService(store).ResolveSubcategory(context.Background(), "ecg-monitors")
	require.NoError(t, err)

	ids := make([]string, 0, len(page.Products))
	for _, p := range page.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p-id", "p-slug", "p-name"}, ids)
	assert.Equal(t, 3, page.Count)
	assert.Equal(t, 1, store.Queries(memstore.OpFindProducts))
}

func TestResolveSubcategoryShapesProducts(t *testing.T) {
	created := *at(5)
	store := seededStore().AddProducts(
		models.Product{ID: "bare", SubcategorySlug: "ecg-monitors"},
		models.Product{
			ID:              "full",
			Name:            "Holter",
			Description:     "<p>24h</p>",
			Price:           1499.5,
			ImagePaths:      []string{`public\images\holter.png`, "public/images/holter-2.png"},
			ImagePath:       "ignored.png",
			Slug:            "holter",
			Features:        []string{"Bluetooth"},
			SubcategorySlug: "ecg-monitors",
			CreatedAt:       &created,
		},
		models.Product{ID: "scalar", ImagePath: "public/images/scalar.png", SubcategorySlug: "ecg-monitors"},
		models.Product{ID: "empty-list", ImagePaths: []string{}, ImagePath: "fallback.png", SubcategorySlug: "ecg-monitors"},
	)

	page, err := newService(store).ResolveSubcategory(context.Background(), "ecg-monitors")
	require.NoError(t, err)
	require.Len(t, page.Products, 4)

	byID := make(map[string]models.ProductCard, len(page.Products))
	for _, p := range page.Products {
		byID[p.ID] = p
	}

	bare := byID["bare"]
	assert.Zero(t, bare.Price)
	assert.Equal(t, "", bare.Description)
	assert.Equal(t, "", bare.ImagePath)
	assert.Equal(t, []string{}, bare.Features)
	assert.Equal(t, fixedNow, bare.CreatedAt)

	full := byID["full"]
	assert.Equal(t, 1499.5, full.Price)
	assert.Equal(t, `public\images\holter.png`, full.ImagePath)
	assert.Equal(t, "/images/holter.png", full.ImageURL)
	assert.Equal(t, []string{"Bluetooth"}, full.Features)
	assert.Equal(t, created, full.CreatedAt)
	assert.Equal(t, "<p>24h</p>", full.Description)

	assert.Equal(t, "public/images/scalar.png", byID["scalar"].ImagePath)
	assert.Equal(t, "fallback.png", byID["empty-list"].ImagePath)
}

func TestResolveSubcategoryNotFound(t *testing.T) {
	store := seededStore()

	page, err := newService(store).ResolveSubcategory(context.Background(), "no-such-thing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Nil(t, page)
	assert.Equal(t, 1, store.TotalQueries())
	assert.Equal(t, 1, store.Closes())
}

func TestResolveSubcategoryReleasesConnectionOnQueryFailure(t *testing.T) {
	for _, op := range []string{memstore.OpFindSubcategory, memstore.OpFindProducts} {
		t.Run(op, func(t *testing.T) {
			store := seededStore()
			store.Fail(op, errors.New("socket closed"))

			_, err := newService(store).ResolveSubcategory(context.Background(), "ecg-monitors")
			require.Error(t, err)
			assert.ErrorIs(t, err, catalog.ErrUnavailable)
			assert.NotErrorIs(t, err, catalog.ErrNotFound)
			assert.Contains(t, err.Error(), "socket closed")
			assert.Equal(t, 1, store.Opens())
			assert.Equal(t, 1, store.Closes())
		})
	}
}

func TestOpenFailureIsUnavailable(t *testing.T) {
	store := seededStore()
	store.FailOpen(errors.New("server selection timeout"))

	_, err := newService(store).ListCategories(context.Background())
	assert.ErrorIs(t, err, catalog.ErrUnavailable)
	assert.Zero(t, store.Closes())
}

func TestReleaseFailureDoesNotFailTheCall(t *testing.T) {
	store := seededStore()
	store.FailClose(errors.New("session already ended"))

	detail, err := newService(store).ResolveCategory(context.Background(), "cardiac")
	require.NoError(t, err)
	assert.Equal(t, "cardiac", detail.Category.Category)
	assert.Equal(t, 1, store.Closes())
}

func TestTimeoutMapsToUnavailable(t *testing.T) {
	store := seededStore()
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := newService(store).ResolveSubcategory(ctx, "ecg-monitors")
	assert.ErrorIs(t, err, catalog.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestListCategories(t *testing.T) {
	items, err := newService(seededStore()).ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CategorySummary{
		{Name: "Cardiac", ImagePath: `public\images\cardiac.png`, Category: "cardiac"},
		{Name: "Respiratory", Category: "respiratory"},
	}, items)
}

func TestListCategoriesEmptyStore(t *testing.T) {
	items, err := newService(memstore.New()).ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListSubcategoriesStripsMarkup(t *testing.T) {
	store := seededStore().AddSubcategories(models.Subcategory{
		ID:          "s4",
		Category:    "respiratory",
		Subcategory: "Nebulizers",
		Description: "<div><p>Compact <i>mesh</i> nebulizer<br/></div> <unterminated",
	})

	items, err := newService(store).ListSubcategories(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)
	for _, item := range items {
		assert.False(t, strings.ContainsAny(item.Description, "<>"), item.Description)
	}
	assert.Equal(t, ecgID, items[0].ID)
	assert.Equal(t, "12-lead ECG", items[0].Description)
	assert.Equal(t, "Compact mesh nebulizer ", items[3].Description)
}

func TestPing(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	require.NoError(t, svc.Ping(context.Background()))

	store.FailPing(errors.New("no reachable servers"))
	assert.ErrorIs(t, svc.Ping(context.Background()), catalog.ErrUnavailable)
}

// End-to-end scenario over the service: a category, its subcategory, and the
// same subcategory reached by slug and by dashed name.
func TestCardiacScenario(t *testing.T) {
	store := memstore.New().
		AddCategories(models.Category{Category: "cardiac", Title: "Cardiac"}).
		AddSubcategories(models.Subcategory{ID: ecgID, Category: "cardiac", Subcategory: "ECG Monitors", Slug: "ecg-monitors"})
	svc := newService(store)

	detail, err := svc.ResolveCategory(context.Background(), "cardiac")
	require.NoError(t, err)
	require.Len(t, detail.Subcategories, 1)
	assert.Equal(t, "ECG Monitors", detail.Subcategories[0].Subcategory)

	bySlug, err := svc.ResolveSubcategory(context.Background(), "ecg-monitors")
	require.NoError(t, err)
	byName, err := svc.ResolveSubcategory(context.Background(), "ECG-Monitors")
	require.NoError(t, err)
	assert.Equal(t, bySlug.Subcategory, byName.Subcategory)
	assert.Empty(t, bySlug.Products)
	assert.NotNil(t, bySlug.Products)
}
