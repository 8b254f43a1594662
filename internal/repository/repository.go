// Package repository owns persistence for the catalog: gorm-backed stores
// with slug assignment inside the write transaction and look-aside cache
// maintenance after commits.
package repository

import (
	"errors"

	"catalog-service/internal/slug"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to handlers. Referential lookups get their own
// errors so handlers can produce structured validation bodies instead of a
// bare 404.
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrBlogNotFound        = errors.New("blog not found")
	ErrBannerNotFound      = errors.New("hero banner not found")
)

// slugRetryLimit bounds retries when a concurrent writer wins the race for
// the same slug. The unique index is the arbiter; on a duplicate-key
// violation the slug is re-resolved against the now-visible rows.
const slugRetryLimit = 3

// slugTaken builds a slug.Taken closure that checks a table for a candidate,
// excluding the record being saved.
func slugTaken(tx *gorm.DB, model interface{}, excludeID uuid.UUID) slug.Taken {
	return func(candidate string) (bool, error) {
		var count int64
		q := tx.Model(model).Where("slug = ?", candidate)
		if excludeID != uuid.Nil {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

// Page describes a normalized pagination request
type Page struct {
	Number int
	Size   int
}

// Pagination bounds for catalog listings
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// NormalizePage clamps raw pagination parameters to the service defaults
func NormalizePage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: page, Size: size}
}

// Offset returns the row offset for the page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
