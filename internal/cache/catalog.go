package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache TTL constants
const (
	CatalogTTL = 15 * time.Minute // catalog lists and detail entries
	PageTTL    = 5 * time.Minute  // blog and banner page-level entries
)

// Fixed key templates. Every cacheable read and every write-path
// invalidation goes through these; ad-hoc keys are not allowed.
const (
	KeyAllProducts       = "products:all"
	KeyPopularProducts   = "products:popular"
	KeyAllCategories     = "categories:all"
	KeyAllSubcategories  = "subcategories:all"
	KeyAllBlogs          = "blogs:all"
	KeyActiveBanners     = "banners:active"
	keyProductDetail     = "product:detail:%s"
	keyRelatedProducts   = "products:related:%s"
	keyProductsBySubcat  = "products:subcategory:%s"
	keyCategoryDetail    = "category:detail:%s"
	keySubcategoryDetail = "subcategory:detail:%s"
	keyBlogDetail        = "blog:detail:%s"

	healthCheckKey = "catalog:cache:health"
)

// KeyProductDetail returns the cache key for a product detail entry
func KeyProductDetail(slug string) string { return fmt.Sprintf(keyProductDetail, slug) }

// KeyRelatedProducts returns the cache key for a product's related list
func KeyRelatedProducts(slug string) string { return fmt.Sprintf(keyRelatedProducts, slug) }

// KeyProductsBySubcategory returns the cache key for a subcategory's product list
func KeyProductsBySubcategory(slug string) string { return fmt.Sprintf(keyProductsBySubcat, slug) }

// KeyCategoryDetail returns the cache key for a category detail entry
func KeyCategoryDetail(slug string) string { return fmt.Sprintf(keyCategoryDetail, slug) }

// KeySubcategoryDetail returns the cache key for a subcategory detail entry
func KeySubcategoryDetail(slug string) string { return fmt.Sprintf(keySubcategoryDetail, slug) }

// KeyBlogDetail returns the cache key for a blog detail entry
func KeyBlogDetail(slug string) string { return fmt.Sprintf(keyBlogDetail, slug) }

// Catalog is the injected cache service for catalog reads. All operations
// fail open: a backend error is logged and the caller recomputes from the
// database.
type Catalog struct {
	store  Store
	logger *logrus.Entry
}

// NewCatalog builds the cache service around a Store
func NewCatalog(store Store, logger *logrus.Logger) *Catalog {
	return &Catalog{
		store:  store,
		logger: logger.WithField("component", "cache"),
	}
}

// GetJSON loads a cached value into dest. Returns false on miss or on any
// backend/decode error.
func (c *Catalog) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if err != ErrMiss {
			c.logger.WithError(err).WithField("key", key).Warn("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache entry corrupt, dropping")
		_ = c.store.Delete(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value under key with the given TTL
func (c *Catalog) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache encode failed")
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

// InvalidateProduct clears every entry a product write can make stale: the
// global lists, the product's own detail and related entries, and the product
// list of each affected subcategory. A reparented product passes both its old
// and new subcategory slugs. Call only after the database write commits.
func (c *Catalog) InvalidateProduct(ctx context.Context, productSlug string, subcategorySlugs ...string) {
	keys := []string{
		KeyAllProducts,
		KeyPopularProducts,
		KeyAllCategories,
		KeyAllSubcategories,
		KeyProductDetail(productSlug),
		KeyRelatedProducts(productSlug),
	}
	seen := make(map[string]bool)
	for _, slug := range subcategorySlugs {
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		keys = append(keys, KeyProductsBySubcategory(slug))
	}
	if err := c.store.DeleteMany(ctx, keys); err != nil {
		c.logger.WithError(err).Warn("product cache invalidation failed")
	}
}

// InvalidateAll flushes the whole cache. Category and subcategory writes use
// this: broader than strictly necessary, but stale reads are worse than a
// recompute.
func (c *Catalog) InvalidateAll(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.WithError(err).Warn("cache clear failed")
	}
}

// InvalidateBlog clears the blog list and one blog's detail entry
func (c *Catalog) InvalidateBlog(ctx context.Context, blogSlug string) {
	keys := []string{KeyAllBlogs, KeyBlogDetail(blogSlug)}
	if err := c.store.DeleteMany(ctx, keys); err != nil {
		c.logger.WithError(err).Warn("blog cache invalidation failed")
	}
}

// InvalidateBanners clears the active banner list
func (c *Catalog) InvalidateBanners(ctx context.Context) {
	if err := c.store.Delete(ctx, KeyActiveBanners); err != nil {
		c.logger.WithError(err).Warn("banner cache invalidation failed")
	}
}

// HealthCheck performs a write-then-read-then-delete round trip on a
// reserved key. Diagnostic only; never part of the request path.
func (c *Catalog) HealthCheck(ctx context.Context) error {
	const probe = "ok"
	if err := c.store.Set(ctx, healthCheckKey, []byte(probe), time.Minute); err != nil {
		return fmt.Errorf("cache health write: %w", err)
	}
	data, err := c.store.Get(ctx, healthCheckKey)
	if err != nil {
		return fmt.Errorf("cache health read: %w", err)
	}
	if string(data) != probe {
		return fmt.Errorf("cache health read returned %q", data)
	}
	if err := c.store.Delete(ctx, healthCheckKey); err != nil {
		return fmt.Errorf("cache health delete: %w", err)
	}
	return nil
}
