package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the catalog vertical a category belongs to
type CategoryType string

const (
	CategoryTypeFireSafety CategoryType = "fire_safety"
	CategoryTypeICT        CategoryType = "ict"
	CategoryTypeSolar      CategoryType = "solar"
)

// ValidCategoryType reports whether t is one of the supported category types
func ValidCategoryType(t CategoryType) bool {
	switch t {
	case CategoryTypeFireSafety, CategoryTypeICT, CategoryTypeSolar:
		return true
	}
	return false
}

// Category represents a top-level product category
type Category struct {
	ID   uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name string       `json:"name" gorm:"not null;uniqueIndex"`
	Type CategoryType `json:"type" gorm:"type:varchar(20);not null"`
	Slug string       `json:"slug" gorm:"not null;uniqueIndex"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Subcategories []Subcategory `json:"subcategories,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name string       `json:"name" binding:"required"`
	Type CategoryType `json:"type" binding:"required"`
}

// UpdateCategoryRequest represents a request to update a category.
// Slug is intentionally absent: slugs are immutable once assigned.
type UpdateCategoryRequest struct {
	Name *string       `json:"name,omitempty"`
	Type *CategoryType `json:"type,omitempty"`
}

// CategoryResponse represents a single category response
type CategoryResponse struct {
	Success bool      `json:"success"`
	Data    *Category `json:"data"`
	Message *string   `json:"message,omitempty"`
}

// CategoryListResponse represents a list of categories response
type CategoryListResponse struct {
	Success bool       `json:"success"`
	Data    []Category `json:"data"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
