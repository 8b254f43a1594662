package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForStock(t *testing.T) {
	assert.Equal(t, StatusInStock, StatusForStock(1))
	assert.Equal(t, StatusInStock, StatusForStock(500))
	assert.Equal(t, StatusOutOfStock, StatusForStock(0))
	assert.Equal(t, StatusOutOfStock, StatusForStock(-1))
}

func TestValidCategoryType(t *testing.T) {
	assert.True(t, ValidCategoryType(CategoryTypeFireSafety))
	assert.True(t, ValidCategoryType(CategoryTypeICT))
	assert.True(t, ValidCategoryType(CategoryTypeSolar))
	assert.False(t, ValidCategoryType("gardening"))
	assert.False(t, ValidCategoryType(""))
}

func TestHeroBannerValidate(t *testing.T) {
	title := "Summer Sale"
	image := "banners/summer.jpg"
	poster := "banners/poster.jpg"

	t.Run("poster mode requires poster image", func(t *testing.T) {
		banner := HeroBanner{CampaignName: "summer", DisplayMode: BannerModePoster}
		assert.ErrorIs(t, banner.Validate(), ErrPosterImageRequired)

		banner.PosterImage = &poster
		assert.NoError(t, banner.Validate())
	})

	t.Run("standard mode requires title and primary image", func(t *testing.T) {
		banner := HeroBanner{CampaignName: "summer", DisplayMode: BannerModeStandard, Title: &title}
		assert.ErrorIs(t, banner.Validate(), ErrStandardFieldsRequired)

		banner.Image1 = &image
		assert.NoError(t, banner.Validate())
	})

	t.Run("empty string fields count as missing", func(t *testing.T) {
		empty := ""
		banner := HeroBanner{CampaignName: "summer", DisplayMode: BannerModePoster, PosterImage: &empty}
		assert.ErrorIs(t, banner.Validate(), ErrPosterImageRequired)
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		banner := HeroBanner{CampaignName: "summer", DisplayMode: "billboard"}
		assert.Error(t, banner.Validate())
	})
}
