package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testCatalog() (*Catalog, *MemoryStore) {
	store := NewMemoryStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewCatalog(store, logger), store
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	assert.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), data)

	assert.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	assert.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	current = current.Add(30 * time.Second)
	_, err := store.Get(ctx, "k")
	assert.NoError(t, err)

	current = current.Add(31 * time.Second)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_DeleteManyAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, k := range []string{"a", "b", "c"} {
		assert.NoError(t, store.Set(ctx, k, []byte(k), 0))
	}

	assert.NoError(t, store.DeleteMany(ctx, []string{"a", "b"}))
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get(ctx, "c")
	assert.NoError(t, err)

	assert.NoError(t, store.Clear(ctx))
	_, err = store.Get(ctx, "c")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCatalog_JSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	catalog, _ := testCatalog()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var out payload
	assert.False(t, catalog.GetJSON(ctx, KeyAllProducts, &out))

	catalog.SetJSON(ctx, KeyAllProducts, payload{Name: "detectors", Count: 3}, CatalogTTL)
	assert.True(t, catalog.GetJSON(ctx, KeyAllProducts, &out))
	assert.Equal(t, "detectors", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestCatalog_CorruptEntryDropped(t *testing.T) {
	ctx := context.Background()
	catalog, store := testCatalog()

	assert.NoError(t, store.Set(ctx, KeyAllBlogs, []byte("{not json"), time.Minute))

	var out map[string]string
	assert.False(t, catalog.GetJSON(ctx, KeyAllBlogs, &out))
	// the broken entry must not survive the failed read
	_, err := store.Get(ctx, KeyAllBlogs)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCatalog_InvalidateProduct(t *testing.T) {
	ctx := context.Background()
	catalog, store := testCatalog()

	stale := []string{
		KeyAllProducts,
		KeyPopularProducts,
		KeyAllCategories,
		KeyAllSubcategories,
		KeyProductDetail("smoke-detector-a"),
		KeyRelatedProducts("smoke-detector-a"),
		KeyProductsBySubcategory("detectors"),
	}
	untouched := []string{
		KeyProductDetail("other-product"),
		KeyProductsBySubcategory("cameras"),
		KeyAllBlogs,
	}
	for _, k := range append(append([]string{}, stale...), untouched...) {
		assert.NoError(t, store.Set(ctx, k, []byte("cached"), time.Minute))
	}

	catalog.InvalidateProduct(ctx, "smoke-detector-a", "detectors")

	for _, k := range stale {
		_, err := store.Get(ctx, k)
		assert.ErrorIs(t, err, ErrMiss, "expected %s to be invalidated", k)
	}
	for _, k := range untouched {
		_, err := store.Get(ctx, k)
		assert.NoError(t, err, "expected %s to survive", k)
	}
}

// A reparented product must clear the cached list of the subcategory it left
// as well as the one it joined.
func TestCatalog_InvalidateProduct_Reparent(t *testing.T) {
	ctx := context.Background()
	catalog, store := testCatalog()

	oldList := KeyProductsBySubcategory("detectors")
	newList := KeyProductsBySubcategory("cameras")
	bystander := KeyProductsBySubcategory("alarms")
	for _, k := range []string{oldList, newList, bystander} {
		assert.NoError(t, store.Set(ctx, k, []byte("cached"), time.Minute))
	}

	catalog.InvalidateProduct(ctx, "smoke-detector-a", "detectors", "cameras")

	_, err := store.Get(ctx, oldList)
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get(ctx, newList)
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get(ctx, bystander)
	assert.NoError(t, err)

	// empty and duplicate slugs are tolerated
	assert.NoError(t, store.Set(ctx, oldList, []byte("cached"), time.Minute))
	catalog.InvalidateProduct(ctx, "smoke-detector-a", "", "detectors", "detectors")
	_, err = store.Get(ctx, oldList)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCatalog_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	catalog, store := testCatalog()

	assert.NoError(t, store.Set(ctx, KeyAllProducts, []byte("x"), time.Minute))
	assert.NoError(t, store.Set(ctx, KeyBlogDetail("post"), []byte("x"), time.Minute))

	catalog.InvalidateAll(ctx)

	_, err := store.Get(ctx, KeyAllProducts)
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get(ctx, KeyBlogDetail("post"))
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCatalog_InvalidateBlog(t *testing.T) {
	ctx := context.Background()
	catalog, store := testCatalog()

	assert.NoError(t, store.Set(ctx, KeyAllBlogs, []byte("x"), time.Minute))
	assert.NoError(t, store.Set(ctx, KeyBlogDetail("news"), []byte("x"), time.Minute))
	assert.NoError(t, store.Set(ctx, KeyAllProducts, []byte("x"), time.Minute))

	catalog.InvalidateBlog(ctx, "news")

	_, err := store.Get(ctx, KeyAllBlogs)
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get(ctx, KeyBlogDetail("news"))
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get(ctx, KeyAllProducts)
	assert.NoError(t, err)
}

func TestCatalog_HealthCheck(t *testing.T) {
	catalog, store := testCatalog()
	assert.NoError(t, catalog.HealthCheck(context.Background()))

	// the probe key must not linger
	_, err := store.Get(context.Background(), healthCheckKey)
	assert.ErrorIs(t, err, ErrMiss)
}
