package repository

import (
	"context"
	"testing"

	"catalog-service/internal/cache"
	"catalog-service/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name string
		page int
		size int
		want Page
	}{
		{"defaults", 0, 0, Page{Number: 1, Size: DefaultPageSize}},
		{"negative page", -3, 10, Page{Number: 1, Size: 10}},
		{"size capped", 2, 500, Page{Number: 2, Size: MaxPageSize}},
		{"passthrough", 3, 24, Page{Number: 3, Size: 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePage(tt.page, tt.size))
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 12}.Offset())
	assert.Equal(t, 12, Page{Number: 2, Size: 12}.Offset())
	assert.Equal(t, 48, Page{Number: 5, Size: 12}.Offset())
}

// Popular serves a cached list only for the default limit. The nil db makes
// the test fail loudly if the query path is reached.
func TestPopularServesCacheAtDefaultLimit(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	catalogCache := cache.NewCatalog(cache.NewMemoryStore(), logger)

	cached := []models.Product{{Name: "Switch A"}, {Name: "Switch B"}}
	catalogCache.SetJSON(ctx, cache.KeyPopularProducts, cached, cache.CatalogTTL)

	repo := NewProductRepository(nil, catalogCache)
	products, err := repo.Popular(ctx, DefaultPopularLimit)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "Switch A", products[0].Name)
}
