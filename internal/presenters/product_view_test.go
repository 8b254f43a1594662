package presenters

import (
	"testing"

	"catalog-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testURLs = URLResolver{MediaBaseURL: "https://cdn.example.com/media"}

func strPtr(s string) *string { return &s }

func TestToProductView_StatusRecomputedFromStock(t *testing.T) {
	// stored status is deliberately stale: the view must ignore it
	p := &models.Product{
		ID:     uuid.New(),
		Name:   "Smoke Detector A",
		Slug:   "smoke-detector-a",
		Stock:  0,
		Status: models.StatusInStock,
	}

	view := ToProductView(p, false, testURLs)
	assert.Equal(t, models.StatusOutOfStock, view.Status)

	p.Stock = 5
	p.Status = models.StatusOutOfStock
	view = ToProductView(p, false, testURLs)
	assert.Equal(t, models.StatusInStock, view.Status)
}

func TestToProductView_PriceGating(t *testing.T) {
	price := decimal.RequireFromString("149.99")
	p := &models.Product{
		ID:              uuid.New(),
		Name:            "IP Camera",
		Slug:            "ip-camera",
		Price:           &price,
		PriceVisibility: models.PriceLoginRequired,
		Stock:           3,
	}

	anon := ToProductView(p, false, testURLs)
	assert.Nil(t, anon.Price)
	assert.True(t, anon.PriceRequiresLogin)

	authed := ToProductView(p, true, testURLs)
	assert.NotNil(t, authed.Price)
	assert.True(t, authed.Price.Equal(price))
	assert.False(t, authed.PriceRequiresLogin)
}

func TestToProductView_PublicPriceAlwaysVisible(t *testing.T) {
	price := decimal.RequireFromString("25.50")
	p := &models.Product{
		Name:            "Cable",
		Price:           &price,
		PriceVisibility: models.PricePublic,
	}

	view := ToProductView(p, false, testURLs)
	assert.NotNil(t, view.Price)
	assert.True(t, view.Price.Equal(price))
	assert.False(t, view.PriceRequiresLogin)
}

func TestToProductView_NullPriceEmitsZero(t *testing.T) {
	p := &models.Product{Name: "Quote Only", PriceVisibility: models.PricePublic}

	view := ToProductView(p, false, testURLs)
	assert.NotNil(t, view.Price)
	assert.True(t, view.Price.Equal(decimal.Zero))
}

func TestToProductView_URLResolution(t *testing.T) {
	p := &models.Product{
		Name:             "Detector",
		ImageRef:         strPtr("products/detector.jpg"),
		DocumentationURL: strPtr("https://docs.example.com/detector.pdf"),
	}

	view := ToProductView(p, false, testURLs)
	assert.Equal(t, "https://cdn.example.com/media/products/detector.jpg", *view.Image)
	// absolute references pass through untouched
	assert.Equal(t, "https://docs.example.com/detector.pdf", *view.DocumentationURL)
}

func TestToProductView_SubcategoryRef(t *testing.T) {
	p := &models.Product{
		Name: "Detector",
		Subcategory: &models.Subcategory{
			ID:   uuid.New(),
			Name: "Detectors",
			Slug: "detectors",
			Category: &models.Category{
				Name: "Fire Safety",
				Slug: "fire-safety",
			},
		},
	}

	view := ToProductView(p, false, testURLs)
	assert.NotNil(t, view.Subcategory)
	assert.Equal(t, "detectors", view.Subcategory.Slug)
	assert.Equal(t, "fire-safety", view.Subcategory.CategorySlug)
}

func TestURLResolver(t *testing.T) {
	urls := URLResolver{MediaBaseURL: "https://cdn.example.com/media/"}

	assert.Nil(t, urls.Resolve(nil))
	empty := ""
	assert.Nil(t, urls.Resolve(&empty))

	rel := "blog/cover.png"
	assert.Equal(t, "https://cdn.example.com/media/blog/cover.png", *urls.Resolve(&rel))

	leading := "/blog/cover.png"
	assert.Equal(t, "https://cdn.example.com/media/blog/cover.png", *urls.Resolve(&leading))

	abs := "http://elsewhere.example.com/x.png"
	assert.Equal(t, abs, *urls.Resolve(&abs))
}

func TestToHeroBannerView_ResolvesImages(t *testing.T) {
	b := &models.HeroBanner{
		ID:           uuid.New(),
		CampaignName: "Summer Solar",
		DisplayMode:  models.BannerModePoster,
		PosterImage:  strPtr("banners/summer.jpg"),
		Layout:       models.BannerLayoutFullWidth,
	}

	view := ToHeroBannerView(b, testURLs)
	assert.Equal(t, "https://cdn.example.com/media/banners/summer.jpg", *view.PosterImage)
}
