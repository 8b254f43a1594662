package presenters

import (
	"time"

	"catalog-service/internal/models"

	"github.com/google/uuid"
)

// BlogView is the client-facing representation of a blog post
type BlogView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Image       *string   `json:"image"`
	SourceName  *string   `json:"sourceName,omitempty"`
	SourceURL   *string   `json:"sourceUrl,omitempty"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToBlogView maps a stored blog post to its client representation
func ToBlogView(b *models.Blog, urls URLResolver) BlogView {
	return BlogView{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Excerpt:     b.Excerpt,
		Content:     b.Content,
		Image:       urls.Resolve(b.ImageRef),
		SourceName:  b.SourceName,
		SourceURL:   b.SourceURL,
		IsPublished: b.IsPublished,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBlogViews maps a slice of blog posts
func ToBlogViews(blogs []models.Blog, urls URLResolver) []BlogView {
	views := make([]BlogView, len(blogs))
	for i := range blogs {
		views[i] = ToBlogView(&blogs[i], urls)
	}
	return views
}

// HeroBannerView is the client-facing representation of a hero banner
type HeroBannerView struct {
	ID           uuid.UUID                `json:"id"`
	CampaignName string                   `json:"campaignName"`
	DisplayMode  models.BannerDisplayMode `json:"displayMode"`
	DisplayOrder int                      `json:"displayOrder"`
	PosterImage  *string                  `json:"posterImage,omitempty"`
	PosterLink   *string                  `json:"posterLink,omitempty"`
	Title        *string                  `json:"title,omitempty"`
	Subtitle     *string                  `json:"subtitle,omitempty"`
	Description  *string                  `json:"description,omitempty"`
	ButtonText   *string                  `json:"buttonText,omitempty"`
	ButtonLink   *string                  `json:"buttonLink,omitempty"`
	Image1       *string                  `json:"image1,omitempty"`
	Image2       *string                  `json:"image2,omitempty"`
	Layout       models.BannerLayout      `json:"layout"`
}

// ToHeroBannerView maps a stored banner to its client representation
func ToHeroBannerView(b *models.HeroBanner, urls URLResolver) HeroBannerView {
	return HeroBannerView{
		ID:           b.ID,
		CampaignName: b.CampaignName,
		DisplayMode:  b.DisplayMode,
		DisplayOrder: b.DisplayOrder,
		PosterImage:  urls.Resolve(b.PosterImage),
		PosterLink:   b.PosterLink,
		Title:        b.Title,
		Subtitle:     b.Subtitle,
		Description:  b.Description,
		ButtonText:   b.ButtonText,
		ButtonLink:   b.ButtonLink,
		Image1:       urls.Resolve(b.Image1),
		Image2:       urls.Resolve(b.Image2),
		Layout:       b.Layout,
	}
}

// ToHeroBannerViews maps a slice of banners
func ToHeroBannerViews(banners []models.HeroBanner, urls URLResolver) []HeroBannerView {
	views := make([]HeroBannerView, len(banners))
	for i := range banners {
		views[i] = ToHeroBannerView(&banners[i], urls)
	}
	return views
}
