package models

import (
	"time"

	"github.com/google/uuid"
)

// Subcategory represents a second-level grouping under a category
type Subcategory struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name       string    `json:"name" gorm:"not null"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;index"`
	Slug       string    `json:"slug" gorm:"not null;uniqueIndex"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:SubcategoryID;constraint:OnDelete:CASCADE"`
}

// CreateSubcategoryRequest represents a request to create a new subcategory.
// The owning category is taken from the URL (slug or id), never from the body.
type CreateSubcategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateSubcategoryRequest represents a request to update a subcategory
type UpdateSubcategoryRequest struct {
	Name       *string    `json:"name,omitempty"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
}

// SubcategoryResponse represents a single subcategory response
type SubcategoryResponse struct {
	Success bool         `json:"success"`
	Data    *Subcategory `json:"data"`
	Message *string      `json:"message,omitempty"`
}

// SubcategoryListResponse represents a list of subcategories response
type SubcategoryListResponse struct {
	Success bool          `json:"success"`
	Data    []Subcategory `json:"data"`
}

// TableName returns the table name for the Subcategory model
func (Subcategory) TableName() string {
	return "subcategories"
}
