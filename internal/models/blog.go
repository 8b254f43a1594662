package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog represents a blog post
type Blog struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"not null;uniqueIndex"`
	Excerpt     string    `json:"excerpt" gorm:"type:text"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	ImageRef    *string   `json:"imageRef,omitempty"`
	SourceName  *string   `json:"sourceName,omitempty"`
	SourceURL   *string   `json:"sourceUrl,omitempty"`
	IsPublished bool      `json:"isPublished" gorm:"default:false;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBlogRequest represents a request to create a blog post
type CreateBlogRequest struct {
	Title       string  `json:"title" binding:"required"`
	Excerpt     string  `json:"excerpt"`
	Content     string  `json:"content" binding:"required"`
	ImageRef    *string `json:"imageRef,omitempty"`
	SourceName  *string `json:"sourceName,omitempty"`
	SourceURL   *string `json:"sourceUrl,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

// UpdateBlogRequest represents a request to update a blog post
type UpdateBlogRequest struct {
	Title       *string `json:"title,omitempty"`
	Excerpt     *string `json:"excerpt,omitempty"`
	Content     *string `json:"content,omitempty"`
	ImageRef    *string `json:"imageRef,omitempty"`
	SourceName  *string `json:"sourceName,omitempty"`
	SourceURL   *string `json:"sourceUrl,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

// TableName returns the table name for the Blog model
func (Blog) TableName() string {
	return "blogs"
}
