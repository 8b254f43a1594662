package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BannerDisplayMode selects which set of hero banner fields is rendered
type BannerDisplayMode string

const (
	BannerModeStandard BannerDisplayMode = "standard"
	BannerModePoster   BannerDisplayMode = "poster"
)

// BannerLayout controls image placement for standard-mode banners
type BannerLayout string

const (
	BannerLayoutImageRight BannerLayout = "image_right"
	BannerLayoutImageLeft  BannerLayout = "image_left"
	BannerLayoutFullWidth  BannerLayout = "full_width"
)

var (
	ErrPosterImageRequired    = errors.New("poster display mode requires a poster image")
	ErrStandardFieldsRequired = errors.New("standard display mode requires a title and a primary image")
)

// HeroBanner represents a homepage hero campaign slot
type HeroBanner struct {
	ID           uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CampaignName string            `json:"campaignName" gorm:"not null"`
	DisplayMode  BannerDisplayMode `json:"displayMode" gorm:"type:varchar(20);not null;default:'standard'"`
	IsActive     bool              `json:"isActive" gorm:"default:true;index"`
	DisplayOrder int               `json:"displayOrder" gorm:"not null;default:0"`
	StartDate    *time.Time        `json:"startDate,omitempty"`
	EndDate      *time.Time        `json:"endDate,omitempty"`

	// Poster mode
	PosterImage *string `json:"posterImage,omitempty"`
	PosterLink  *string `json:"posterLink,omitempty"`

	// Standard mode
	Title       *string      `json:"title,omitempty"`
	Subtitle    *string      `json:"subtitle,omitempty"`
	Description *string      `json:"description,omitempty" gorm:"type:text"`
	ButtonText  *string      `json:"buttonText,omitempty"`
	ButtonLink  *string      `json:"buttonLink,omitempty"`
	Image1      *string      `json:"image1,omitempty"`
	Image2      *string      `json:"image2,omitempty"`
	Layout      BannerLayout `json:"layout" gorm:"type:varchar(20);not null;default:'image_right'"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate enforces the per-mode field requirements before save
func (b *HeroBanner) Validate() error {
	switch b.DisplayMode {
	case BannerModePoster:
		if b.PosterImage == nil || *b.PosterImage == "" {
			return ErrPosterImageRequired
		}
	case BannerModeStandard:
		if b.Title == nil || *b.Title == "" || b.Image1 == nil || *b.Image1 == "" {
			return ErrStandardFieldsRequired
		}
	default:
		return errors.New("unknown display mode: " + string(b.DisplayMode))
	}
	return nil
}

// CreateHeroBannerRequest represents a request to create a hero banner
type CreateHeroBannerRequest struct {
	CampaignName string            `json:"campaignName" binding:"required"`
	DisplayMode  BannerDisplayMode `json:"displayMode" binding:"required"`
	IsActive     *bool             `json:"isActive,omitempty"`
	DisplayOrder *int              `json:"displayOrder,omitempty"`
	StartDate    *time.Time        `json:"startDate,omitempty"`
	EndDate      *time.Time        `json:"endDate,omitempty"`
	PosterImage  *string           `json:"posterImage,omitempty"`
	PosterLink   *string           `json:"posterLink,omitempty"`
	Title        *string           `json:"title,omitempty"`
	Subtitle     *string           `json:"subtitle,omitempty"`
	Description  *string           `json:"description,omitempty"`
	ButtonText   *string           `json:"buttonText,omitempty"`
	ButtonLink   *string           `json:"buttonLink,omitempty"`
	Image1       *string           `json:"image1,omitempty"`
	Image2       *string           `json:"image2,omitempty"`
	Layout       *BannerLayout     `json:"layout,omitempty"`
}

// UpdateHeroBannerRequest represents a request to update a hero banner
type UpdateHeroBannerRequest struct {
	CampaignName *string            `json:"campaignName,omitempty"`
	DisplayMode  *BannerDisplayMode `json:"displayMode,omitempty"`
	IsActive     *bool              `json:"isActive,omitempty"`
	DisplayOrder *int               `json:"displayOrder,omitempty"`
	StartDate    *time.Time         `json:"startDate,omitempty"`
	EndDate      *time.Time         `json:"endDate,omitempty"`
	PosterImage  *string            `json:"posterImage,omitempty"`
	PosterLink   *string            `json:"posterLink,omitempty"`
	Title        *string            `json:"title,omitempty"`
	Subtitle     *string            `json:"subtitle,omitempty"`
	Description  *string            `json:"description,omitempty"`
	ButtonText   *string            `json:"buttonText,omitempty"`
	ButtonLink   *string            `json:"buttonLink,omitempty"`
	Image1       *string            `json:"image1,omitempty"`
	Image2       *string            `json:"image2,omitempty"`
	Layout       *BannerLayout      `json:"layout,omitempty"`
}

// TableName returns the table name for the HeroBanner model
func (HeroBanner) TableName() string {
	return "hero_banners"
}
