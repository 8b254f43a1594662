package repository

import (
	"context"
	"errors"
	"time"

	"catalog-service/internal/cache"
	"catalog-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeroBannerRepositoryInterface defines hero banner persistence operations
type HeroBannerRepositoryInterface interface {
	Create(ctx context.Context, banner *models.HeroBanner) error
	GetAll(ctx context.Context) ([]models.HeroBanner, error)
	GetActive(ctx context.Context, now time.Time) ([]models.HeroBanner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.HeroBanner, error)
	Update(ctx context.Context, banner *models.HeroBanner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type HeroBannerRepository struct {
	db    *gorm.DB
	cache *cache.Catalog
}

var _ HeroBannerRepositoryInterface = (*HeroBannerRepository)(nil)

func NewHeroBannerRepository(db *gorm.DB, catalogCache *cache.Catalog) *HeroBannerRepository {
	return &HeroBannerRepository{db: db, cache: catalogCache}
}

func (r *HeroBannerRepository) Create(ctx context.Context, banner *models.HeroBanner) error {
	if err := banner.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return err
	}
	r.cache.InvalidateBanners(ctx)
	return nil
}

// GetAll lists every banner ordered for the admin screen
func (r *HeroBannerRepository) GetAll(ctx context.Context) ([]models.HeroBanner, error) {
	var banners []models.HeroBanner
	err := r.db.WithContext(ctx).
		Order("display_order ASC, created_at DESC").
		Find(&banners).Error
	return banners, err
}

// GetActive lists banners eligible for display right now: flagged active and
// inside their optional date window. Cached at page TTL.
func (r *HeroBannerRepository) GetActive(ctx context.Context, now time.Time) ([]models.HeroBanner, error) {
	var cached []models.HeroBanner
	if r.cache.GetJSON(ctx, cache.KeyActiveBanners, &cached) {
		return cached, nil
	}

	var banners []models.HeroBanner
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Order("display_order ASC, created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}

	r.cache.SetJSON(ctx, cache.KeyActiveBanners, banners, cache.PageTTL)
	return banners, nil
}

func (r *HeroBannerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.HeroBanner, error) {
	var banner models.HeroBanner
	if err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	return &banner, nil
}

func (r *HeroBannerRepository) Update(ctx context.Context, banner *models.HeroBanner) error {
	if err := banner.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(banner).Error; err != nil {
		return err
	}
	r.cache.InvalidateBanners(ctx)
	return nil
}

func (r *HeroBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.HeroBanner{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBannerNotFound
	}
	r.cache.InvalidateBanners(ctx)
	return nil
}
