package repository

import (
	"context"
	"errors"

	"catalog-service/internal/cache"
	"catalog-service/internal/models"
	"catalog-service/internal/slug"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogRepositoryInterface defines blog post persistence operations
type BlogRepositoryInterface interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetAll(ctx context.Context, publishedOnly bool) ([]models.Blog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	GetBySlug(ctx context.Context, s string) (*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlogRepository struct {
	db    *gorm.DB
	cache *cache.Catalog
}

var _ BlogRepositoryInterface = (*BlogRepository)(nil)

func NewBlogRepository(db *gorm.DB, catalogCache *cache.Catalog) *BlogRepository {
	return &BlogRepository{db: db, cache: catalogCache}
}

// Create persists a blog post, resolving its slug from the title on first save
func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	requested := blog.Slug
	var err error
	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if blog.Slug == "" {
				resolved, rerr := slug.Resolve(blog.Title, slugTaken(tx, &models.Blog{}, blog.ID))
				if rerr != nil {
					return rerr
				}
				blog.Slug = resolved
			}
			return tx.Create(blog).Error
		})
		if err == nil {
			r.cache.InvalidateBlog(ctx, blog.Slug)
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if requested != "" {
			return err
		}
		blog.Slug = ""
	}
	return err
}

// GetAll lists blog posts newest first. The published-only listing serves the
// public site and is look-aside cached; the unfiltered one serves admin.
func (r *BlogRepository) GetAll(ctx context.Context, publishedOnly bool) ([]models.Blog, error) {
	if publishedOnly {
		var cached []models.Blog
		if r.cache.GetJSON(ctx, cache.KeyAllBlogs, &cached) {
			return cached, nil
		}
	}

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var blogs []models.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return nil, err
	}

	if publishedOnly {
		r.cache.SetJSON(ctx, cache.KeyAllBlogs, blogs, cache.PageTTL)
	}
	return blogs, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepository) GetBySlug(ctx context.Context, s string) (*models.Blog, error) {
	key := cache.KeyBlogDetail(s)

	var cached models.Blog
	if r.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, "slug = ?", s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	r.cache.SetJSON(ctx, key, blog, cache.PageTTL)
	return &blog, nil
}

// Update persists changes to a blog post; the slug is never regenerated
func (r *BlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return err
	}
	r.cache.InvalidateBlog(ctx, blog.Slug)
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	blog, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&models.Blog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}

	r.cache.InvalidateBlog(ctx, blog.Slug)
	return nil
}
