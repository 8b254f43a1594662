package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the stock status of a product
type ProductStatus string

const (
	StatusInStock    ProductStatus = "in_stock"
	StatusOutOfStock ProductStatus = "out_of_stock"
)

// PriceVisibility gates whether a product price is shown to anonymous viewers
type PriceVisibility string

const (
	PricePublic        PriceVisibility = "public"
	PriceLoginRequired PriceVisibility = "login_required"
)

// StatusForStock derives the stock status from the on-hand quantity.
// Status is never stored independently of stock; every write and every
// client-facing read goes through this function.
func StatusForStock(stock int) ProductStatus {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

// Product represents a catalog product
type Product struct {
	ID                 uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name               string           `json:"name" gorm:"not null"`
	Brand              *string          `json:"brand,omitempty"`
	SKU                *string          `json:"sku,omitempty" gorm:"index"`
	Price              *decimal.Decimal `json:"price,omitempty" gorm:"type:decimal(10,2)"`
	PriceVisibility    PriceVisibility  `json:"priceVisibility" gorm:"type:varchar(20);not null;default:'public'"`
	Description        string           `json:"description" gorm:"type:text"`
	Features           string           `json:"features" gorm:"type:text"`
	ImageRef           *string          `json:"imageRef,omitempty"`
	Slug               string           `json:"slug" gorm:"not null;uniqueIndex"`
	DocumentationURL   *string          `json:"documentationUrl,omitempty"`
	DocumentationLabel *string          `json:"documentationLabel,omitempty"`
	Status             ProductStatus    `json:"status" gorm:"type:varchar(20);not null;default:'in_stock'"`
	Stock              int              `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	IsPopular          bool             `json:"isPopular" gorm:"default:false;index"`
	MetaTitle          *string          `json:"metaTitle,omitempty"`
	MetaDescription    *string          `json:"metaDescription,omitempty" gorm:"type:text"`
	SubcategoryID      uuid.UUID        `json:"subcategoryId" gorm:"type:uuid;not null;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Subcategory         *Subcategory         `json:"subcategory,omitempty" gorm:"foreignKey:SubcategoryID"`
	SpecificationTables []SpecificationTable `json:"specificationTables,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// SpecificationTable groups rows of technical specifications for a product
type SpecificationTable struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Title     *string   `json:"title,omitempty"`
	Position  int       `json:"position" gorm:"not null;default:0"`

	Rows []SpecificationRow `json:"rows,omitempty" gorm:"foreignKey:TableID;constraint:OnDelete:CASCADE"`
}

// SpecificationRow is a single key/value entry in a specification table
type SpecificationRow struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TableID  uuid.UUID `json:"tableId" gorm:"type:uuid;not null;index"`
	Key      *string   `json:"key,omitempty"`
	Value    *string   `json:"value,omitempty"`
	Position int       `json:"position" gorm:"not null;default:0"`
}

// SpecificationRowInput is a row in a create/update payload
type SpecificationRowInput struct {
	Key   *string `json:"key,omitempty"`
	Value *string `json:"value,omitempty"`
}

// SpecificationTableInput is a table in a create/update payload
type SpecificationTableInput struct {
	Title *string                 `json:"title,omitempty"`
	Rows  []SpecificationRowInput `json:"rows,omitempty"`
}

// CreateProductRequest represents a request to create a new product.
// The owning subcategory comes from the URL or from the subcategory field,
// which accepts either an id or a slug.
type CreateProductRequest struct {
	Name               string                    `json:"name" binding:"required"`
	Brand              *string                   `json:"brand,omitempty"`
	SKU                *string                   `json:"sku,omitempty"`
	Price              *decimal.Decimal          `json:"price,omitempty"`
	PriceVisibility    *PriceVisibility          `json:"priceVisibility,omitempty"`
	Description        string                    `json:"description"`
	Features           string                    `json:"features"`
	ImageRef           *string                   `json:"imageRef,omitempty"`
	DocumentationURL   *string                   `json:"documentationUrl,omitempty"`
	DocumentationLabel *string                   `json:"documentationLabel,omitempty"`
	Stock              *int                      `json:"stock,omitempty"`
	IsPopular          *bool                     `json:"isPopular,omitempty"`
	MetaTitle          *string                   `json:"metaTitle,omitempty"`
	MetaDescription    *string                   `json:"metaDescription,omitempty"`
	Subcategory        *string                   `json:"subcategory,omitempty"`
	Specifications     []SpecificationTableInput `json:"specifications,omitempty"`
}

// UpdateProductRequest represents a request to update a product.
// Slug is never updatable; renames do not re-slug.
type UpdateProductRequest struct {
	Name               *string                   `json:"name,omitempty"`
	Brand              *string                   `json:"brand,omitempty"`
	SKU                *string                   `json:"sku,omitempty"`
	Price              *decimal.Decimal          `json:"price,omitempty"`
	PriceVisibility    *PriceVisibility          `json:"priceVisibility,omitempty"`
	Description        *string                   `json:"description,omitempty"`
	Features           *string                   `json:"features,omitempty"`
	ImageRef           *string                   `json:"imageRef,omitempty"`
	DocumentationURL   *string                   `json:"documentationUrl,omitempty"`
	DocumentationLabel *string                   `json:"documentationLabel,omitempty"`
	Stock              *int                      `json:"stock,omitempty"`
	IsPopular          *bool                     `json:"isPopular,omitempty"`
	MetaTitle          *string                   `json:"metaTitle,omitempty"`
	MetaDescription    *string                   `json:"metaDescription,omitempty"`
	Subcategory        *string                   `json:"subcategory,omitempty"`
	Specifications     []SpecificationTableInput `json:"specifications,omitempty"`
}

// UpdateStockRequest represents a request to set the on-hand quantity
type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the SpecificationTable model
func (SpecificationTable) TableName() string {
	return "specification_tables"
}

// TableName returns the table name for the SpecificationRow model
func (SpecificationRow) TableName() string {
	return "specification_rows"
}
