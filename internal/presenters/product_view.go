package presenters

import (
	"catalog-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubcategoryRef is the minimal subcategory embedded in a product view
type SubcategoryRef struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	CategorySlug string    `json:"categorySlug,omitempty"`
}

// SpecificationTableView is a resolved specification table
type SpecificationTableView struct {
	ID    uuid.UUID              `json:"id"`
	Title *string                `json:"title,omitempty"`
	Rows  []SpecificationRowView `json:"rows"`
}

// SpecificationRowView is a single specification entry
type SpecificationRowView struct {
	Key   *string `json:"key,omitempty"`
	Value *string `json:"value,omitempty"`
}

// ProductView is the client-facing representation of a product
type ProductView struct {
	ID                 uuid.UUID                `json:"id"`
	Name               string                   `json:"name"`
	Brand              *string                  `json:"brand,omitempty"`
	SKU                *string                  `json:"sku,omitempty"`
	Price              *decimal.Decimal         `json:"price"`
	PriceRequiresLogin bool                     `json:"priceRequiresLogin"`
	Description        string                   `json:"description"`
	Features           string                   `json:"features"`
	Image              *string                  `json:"image"`
	Slug               string                   `json:"slug"`
	DocumentationURL   *string                  `json:"documentationUrl,omitempty"`
	DocumentationLabel *string                  `json:"documentationLabel,omitempty"`
	Status             models.ProductStatus     `json:"status"`
	Stock              int                      `json:"stock"`
	IsPopular          bool                     `json:"isPopular"`
	MetaTitle          *string                  `json:"metaTitle,omitempty"`
	MetaDescription    *string                  `json:"metaDescription,omitempty"`
	Subcategory        *SubcategoryRef          `json:"subcategory,omitempty"`
	Specifications     []SpecificationTableView `json:"specifications,omitempty"`
}

// ToProductView maps a stored product to its client representation.
//
// The status field is always recomputed from stock; a stale stored status is
// never surfaced. Price follows the visibility gate: login_required products
// show no price to anonymous viewers, everything else emits a decimal with a
// 0.00 fallback for null prices.
func ToProductView(p *models.Product, viewerAuthenticated bool, urls URLResolver) ProductView {
	view := ProductView{
		ID:                 p.ID,
		Name:               p.Name,
		Brand:              p.Brand,
		SKU:                p.SKU,
		Description:        p.Description,
		Features:           p.Features,
		Image:              urls.Resolve(p.ImageRef),
		Slug:               p.Slug,
		DocumentationURL:   urls.Resolve(p.DocumentationURL),
		DocumentationLabel: p.DocumentationLabel,
		Status:             models.StatusForStock(p.Stock),
		Stock:              p.Stock,
		IsPopular:          p.IsPopular,
		MetaTitle:          p.MetaTitle,
		MetaDescription:    p.MetaDescription,
	}

	if p.PriceVisibility == models.PriceLoginRequired && !viewerAuthenticated {
		view.PriceRequiresLogin = true
	} else {
		price := decimal.Zero
		if p.Price != nil {
			price = *p.Price
		}
		view.Price = &price
	}

	if p.Subcategory != nil {
		ref := &SubcategoryRef{
			ID:   p.Subcategory.ID,
			Name: p.Subcategory.Name,
			Slug: p.Subcategory.Slug,
		}
		if p.Subcategory.Category != nil {
			ref.CategorySlug = p.Subcategory.Category.Slug
		}
		view.Subcategory = ref
	}

	for _, table := range p.SpecificationTables {
		tv := SpecificationTableView{ID: table.ID, Title: table.Title}
		for _, row := range table.Rows {
			tv.Rows = append(tv.Rows, SpecificationRowView{Key: row.Key, Value: row.Value})
		}
		view.Specifications = append(view.Specifications, tv)
	}

	return view
}

// ToProductViews maps a slice of products
func ToProductViews(products []models.Product, viewerAuthenticated bool, urls URLResolver) []ProductView {
	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = ToProductView(&products[i], viewerAuthenticated, urls)
	}
	return views
}
