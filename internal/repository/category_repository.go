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

// CategoryRepositoryInterface defines category persistence operations
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *models.Category) error
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlug(ctx context.Context, s string) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository struct {
	db    *gorm.DB
	cache *cache.Catalog
}

var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB, catalogCache *cache.Catalog) *CategoryRepository {
	return &CategoryRepository{db: db, cache: catalogCache}
}

// Create persists a new category. Slug assignment happens inside the write
// transaction, so a saved category without a slug is never observable. A
// duplicate-key loss against a concurrent writer re-resolves and retries.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	requested := category.Slug
	var err error
	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if category.Slug == "" {
				resolved, rerr := slug.Resolve(category.Name, slugTaken(tx, &models.Category{}, category.ID))
				if rerr != nil {
					return rerr
				}
				category.Slug = resolved
			}
			return tx.Create(category).Error
		})
		if err == nil {
			r.cache.InvalidateAll(ctx)
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// lost the race: drop the derived slug and resolve again unless the
		// caller asked for an explicit one
		if requested != "" {
			return err
		}
		category.Slug = ""
	}
	return err
}

// GetAll returns every category, look-aside cached
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if r.cache.GetJSON(ctx, cache.KeyAllCategories, &categories) {
		return categories, nil
	}

	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}

	r.cache.SetJSON(ctx, cache.KeyAllCategories, categories, cache.CatalogTTL)
	return categories, nil
}

// GetByID retrieves a category by primary key
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category by slug, look-aside cached
func (r *CategoryRepository) GetBySlug(ctx context.Context, s string) (*models.Category, error) {
	key := cache.KeyCategoryDetail(s)

	var cached models.Category
	if r.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "slug = ?", s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	r.cache.SetJSON(ctx, key, category, cache.CatalogTTL)
	return &category, nil
}

// Update persists changes to a category. The slug is never regenerated on
// rename; existing permalinks stay valid.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Save(category).Error
	if err != nil {
		return err
	}
	r.cache.InvalidateAll(ctx)
	return nil
}

// Delete removes a category. Subcategories and their products go with it via
// the schema-level cascade.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	r.cache.InvalidateAll(ctx)
	return nil
}
