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

// RelatedProductsLimit caps the related-products list on product detail pages
const RelatedProductsLimit = 4

// DefaultPopularLimit is the popular-products list size served and cached
// when the caller does not ask for fewer
const DefaultPopularLimit = 8

// ProductRepositoryInterface defines product persistence operations
type ProductRepositoryInterface interface {
	Create(ctx context.Context, product *models.Product, specs []models.SpecificationTableInput) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlug(ctx context.Context, s string) (*models.Product, error)
	ListBySubcategory(ctx context.Context, subcategory *models.Subcategory, page Page) ([]models.Product, int64, error)
	ListAll(ctx context.Context, page Page) ([]models.Product, int64, error)
	Related(ctx context.Context, product *models.Product) ([]models.Product, error)
	Popular(ctx context.Context, limit int) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product, specs []models.SpecificationTableInput, replaceSpecs bool) error
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository struct {
	db    *gorm.DB
	cache *cache.Catalog
}

var _ ProductRepositoryInterface = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB, catalogCache *cache.Catalog) *ProductRepository {
	return &ProductRepository{db: db, cache: catalogCache}
}

// specTablesFromInput materializes request spec tables for a product
func specTablesFromInput(productID uuid.UUID, specs []models.SpecificationTableInput) []models.SpecificationTable {
	tables := make([]models.SpecificationTable, 0, len(specs))
	for i, in := range specs {
		table := models.SpecificationTable{
			ID:        uuid.New(),
			ProductID: productID,
			Title:     in.Title,
			Position:  i,
		}
		for j, row := range in.Rows {
			table.Rows = append(table.Rows, models.SpecificationRow{
				ID:       uuid.New(),
				TableID:  table.ID,
				Key:      row.Key,
				Value:    row.Value,
				Position: j,
			})
		}
		tables = append(tables, table)
	}
	return tables
}

// subcategorySlug resolves the owning subcategory's slug for invalidation
func (r *ProductRepository) subcategorySlug(ctx context.Context, product *models.Product) string {
	if product.Subcategory != nil {
		return product.Subcategory.Slug
	}
	var sub models.Subcategory
	if err := r.db.WithContext(ctx).Select("slug").First(&sub, "id = ?", product.SubcategoryID).Error; err != nil {
		return ""
	}
	return sub.Slug
}

// storedSubcategorySlug reads the subcategory slug the database currently
// holds for a product, before any in-memory reparenting is persisted.
func (r *ProductRepository) storedSubcategorySlug(ctx context.Context, productID uuid.UUID) string {
	var slug string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("subcategories.slug").
		Joins("JOIN subcategories ON subcategories.id = products.subcategory_id").
		Where("products.id = ?", productID).
		Scan(&slug).Error
	if err != nil {
		return ""
	}
	return slug
}

// Create persists a product together with its specification tables. The slug
// is resolved inside the transaction on first save only; stock status is
// derived, never taken from the caller.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product, specs []models.SpecificationTableInput) error {
	product.Status = models.StatusForStock(product.Stock)

	requested := product.Slug
	var err error
	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if product.Slug == "" {
				resolved, rerr := slug.Resolve(product.Name, slugTaken(tx, &models.Product{}, product.ID))
				if rerr != nil {
					return rerr
				}
				product.Slug = resolved
			}
			if err := tx.Create(product).Error; err != nil {
				return err
			}
			if len(specs) > 0 {
				tables := specTablesFromInput(product.ID, specs)
				if err := tx.Create(&tables).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			r.cache.InvalidateProduct(ctx, product.Slug, r.subcategorySlug(ctx, product))
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if requested != "" {
			return err
		}
		product.Slug = ""
	}
	return err
}

// GetByID retrieves a product with its relations by primary key
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Subcategory.Category").
		Preload("SpecificationTables", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("SpecificationTables.Rows", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug retrieves a product with its relations by slug, look-aside cached
func (r *ProductRepository) GetBySlug(ctx context.Context, s string) (*models.Product, error) {
	key := cache.KeyProductDetail(s)

	var cached models.Product
	if r.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Subcategory.Category").
		Preload("SpecificationTables", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("SpecificationTables.Rows", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&product, "slug = ?", s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	r.cache.SetJSON(ctx, key, product, cache.CatalogTTL)
	return &product, nil
}

// listPage is the cacheable shape of a paginated product query
type listPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// ListBySubcategory returns a page of products under a subcategory, newest
// first. Only the first default-sized page is cached; the key template is
// bound to the subcategory slug alone.
func (r *ProductRepository) ListBySubcategory(ctx context.Context, subcategory *models.Subcategory, page Page) ([]models.Product, int64, error) {
	key := cache.KeyProductsBySubcategory(subcategory.Slug)
	cacheable := page.Number == 1 && page.Size == DefaultPageSize

	if cacheable {
		var cached listPage
		if r.cache.GetJSON(ctx, key, &cached) {
			return cached.Products, cached.Total, nil
		}
	}

	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("subcategory_id = ?", subcategory.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.
		Preload("Subcategory.Category").
		Order("created_at DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		r.cache.SetJSON(ctx, key, listPage{Products: products, Total: total}, cache.CatalogTTL)
	}
	return products, total, nil
}

// ListAll returns a page of all products, newest first. The first
// default-sized page is cached under the full-catalog key.
func (r *ProductRepository) ListAll(ctx context.Context, page Page) ([]models.Product, int64, error) {
	cacheable := page.Number == 1 && page.Size == DefaultPageSize

	if cacheable {
		var cached listPage
		if r.cache.GetJSON(ctx, cache.KeyAllProducts, &cached) {
			return cached.Products, cached.Total, nil
		}
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Subcategory.Category").
		Order("created_at DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		r.cache.SetJSON(ctx, cache.KeyAllProducts, listPage{Products: products, Total: total}, cache.CatalogTTL)
	}
	return products, total, nil
}

// Related returns other products from the same subcategory, cached under the
// source product's slug
func (r *ProductRepository) Related(ctx context.Context, product *models.Product) ([]models.Product, error) {
	key := cache.KeyRelatedProducts(product.Slug)

	var cached []models.Product
	if r.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	var related []models.Product
	err := r.db.WithContext(ctx).
		Preload("Subcategory.Category").
		Where("subcategory_id = ? AND id <> ?", product.SubcategoryID, product.ID).
		Order("created_at DESC").
		Limit(RelatedProductsLimit).
		Find(&related).Error
	if err != nil {
		return nil, err
	}

	r.cache.SetJSON(ctx, key, related, cache.CatalogTTL)
	return related, nil
}

// Popular returns products flagged popular. Only the default-limit result is
// look-aside cached; the key does not encode the limit, so a shorter list
// must never be stored under it.
func (r *ProductRepository) Popular(ctx context.Context, limit int) ([]models.Product, error) {
	cacheable := limit == DefaultPopularLimit

	if cacheable {
		var cached []models.Product
		if r.cache.GetJSON(ctx, cache.KeyPopularProducts, &cached) {
			return cached, nil
		}
	}

	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Subcategory.Category").
		Where("is_popular = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	if cacheable {
		r.cache.SetJSON(ctx, cache.KeyPopularProducts, products, cache.CatalogTTL)
	}
	return products, nil
}

// Update persists changes to a product. Status is re-derived from stock, the
// slug is never regenerated, and specification tables are replaced wholesale
// when the request carries them.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product, specs []models.SpecificationTableInput, replaceSpecs bool) error {
	product.Status = models.StatusForStock(product.Stock)

	// Reparenting moves the product between subcategory lists, so both the
	// stored and the incoming subcategory need their cached pages cleared.
	previousSubSlug := r.storedSubcategorySlug(ctx, product.ID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Subcategory", "SpecificationTables").Save(product).Error; err != nil {
			return err
		}
		if replaceSpecs {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.SpecificationTable{}).Error; err != nil {
				return err
			}
			if len(specs) > 0 {
				tables := specTablesFromInput(product.ID, specs)
				if err := tx.Create(&tables).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.cache.InvalidateProduct(ctx, product.Slug, previousSubSlug, r.subcategorySlug(ctx, product))
	return nil
}

// UpdateStock sets the on-hand quantity and re-derives status in one write
func (r *ProductRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock int) (*models.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Stock = stock
	product.Status = models.StatusForStock(stock)

	err = r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"stock": product.Stock, "status": product.Status}).Error
	if err != nil {
		return nil, err
	}

	r.cache.InvalidateProduct(ctx, product.Slug, r.subcategorySlug(ctx, product))
	return product, nil
}

// Delete removes a product; specification tables cascade
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	subSlug := r.subcategorySlug(ctx, product)

	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	r.cache.InvalidateProduct(ctx, product.Slug, subSlug)
	return nil
}
