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

// SubcategoryRepositoryInterface defines subcategory persistence operations
type SubcategoryRepositoryInterface interface {
	Create(ctx context.Context, subcategory *models.Subcategory) error
	GetAll(ctx context.Context) ([]models.Subcategory, error)
	GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
	GetBySlug(ctx context.Context, s string) (*models.Subcategory, error)
	Update(ctx context.Context, subcategory *models.Subcategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SubcategoryRepository struct {
	db    *gorm.DB
	cache *cache.Catalog
}

var _ SubcategoryRepositoryInterface = (*SubcategoryRepository)(nil)

func NewSubcategoryRepository(db *gorm.DB, catalogCache *cache.Catalog) *SubcategoryRepository {
	return &SubcategoryRepository{db: db, cache: catalogCache}
}

// Create persists a new subcategory with its slug assigned in the same
// transaction. Retries on a duplicate-key loss like the category path.
func (r *SubcategoryRepository) Create(ctx context.Context, subcategory *models.Subcategory) error {
	requested := subcategory.Slug
	var err error
	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if subcategory.Slug == "" {
				resolved, rerr := slug.Resolve(subcategory.Name, slugTaken(tx, &models.Subcategory{}, subcategory.ID))
				if rerr != nil {
					return rerr
				}
				subcategory.Slug = resolved
			}
			return tx.Create(subcategory).Error
		})
		if err == nil {
			r.cache.InvalidateAll(ctx)
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if requested != "" {
			return err
		}
		subcategory.Slug = ""
	}
	return err
}

// GetAll returns every subcategory, look-aside cached
func (r *SubcategoryRepository) GetAll(ctx context.Context) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if r.cache.GetJSON(ctx, cache.KeyAllSubcategories, &subcategories) {
		return subcategories, nil
	}

	if err := r.db.WithContext(ctx).Order("name").Find(&subcategories).Error; err != nil {
		return nil, err
	}

	r.cache.SetJSON(ctx, cache.KeyAllSubcategories, subcategories, cache.CatalogTTL)
	return subcategories, nil
}

// GetByCategory returns the subcategories owned by a category
func (r *SubcategoryRepository) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name").
		Find(&subcategories).Error
	return subcategories, err
}

// GetByID retrieves a subcategory by primary key
func (r *SubcategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	err := r.db.WithContext(ctx).First(&subcategory, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubcategoryNotFound
		}
		return nil, err
	}
	return &subcategory, nil
}

// GetBySlug retrieves a subcategory by slug, look-aside cached
func (r *SubcategoryRepository) GetBySlug(ctx context.Context, s string) (*models.Subcategory, error) {
	key := cache.KeySubcategoryDetail(s)

	var cached models.Subcategory
	if r.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	var subcategory models.Subcategory
	err := r.db.WithContext(ctx).Preload("Category").First(&subcategory, "slug = ?", s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubcategoryNotFound
		}
		return nil, err
	}

	r.cache.SetJSON(ctx, key, subcategory, cache.CatalogTTL)
	return &subcategory, nil
}

// Update persists changes to a subcategory; the slug is left untouched
func (r *SubcategoryRepository) Update(ctx context.Context, subcategory *models.Subcategory) error {
	err := r.db.WithContext(ctx).Save(subcategory).Error
	if err != nil {
		return err
	}
	r.cache.InvalidateAll(ctx)
	return nil
}

// Delete removes a subcategory; its products cascade
func (r *SubcategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Subcategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubcategoryNotFound
	}
	r.cache.InvalidateAll(ctx)
	return nil
}
