package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of CategoryRepositoryInterface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, s string) (*models.Category, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateCategory(t *testing.T) {
	t.Run("rejects unknown category type", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		subRepo := new(MockSubcategoryRepository)
		handler := NewCategoryHandler(repo, subRepo, nil)

		r := setupTestRouter()
		r.POST("/categories", handler.CreateCategory)

		body, _ := json.Marshal(map[string]string{"name": "Gardening", "type": "gardening"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/categories", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp models.ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "type", resp.Error.Field)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("creates category of a known type", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		subRepo := new(MockSubcategoryRepository)
		handler := NewCategoryHandler(repo, subRepo, nil)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Fire Alarms" && c.Type == models.CategoryTypeFireSafety
		})).Return(nil)

		r := setupTestRouter()
		r.POST("/categories", handler.CreateCategory)

		body, _ := json.Marshal(map[string]string{"name": "Fire Alarms", "type": "fire_safety"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/categories", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		repo.AssertExpectations(t)
	})
}

func TestGetCategory(t *testing.T) {
	t.Run("returns category by slug", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		subRepo := new(MockSubcategoryRepository)
		handler := NewCategoryHandler(repo, subRepo, nil)

		category := &models.Category{
			ID:   uuid.New(),
			Name: "Fire Alarms",
			Type: models.CategoryTypeFireSafety,
			Slug: "fire-alarms",
		}
		repo.On("GetBySlug", mock.Anything, "fire-alarms").Return(category, nil)

		r := setupTestRouter()
		r.GET("/categories/:slug", handler.GetCategory)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/categories/fire-alarms", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool            `json:"success"`
			Data    models.Category `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "fire-alarms", resp.Data.Slug)
	})

	t.Run("returns 404 for unknown slug", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		subRepo := new(MockSubcategoryRepository)
		handler := NewCategoryHandler(repo, subRepo, nil)

		repo.On("GetBySlug", mock.Anything, "nope").Return(nil, repository.ErrCategoryNotFound)

		r := setupTestRouter()
		r.GET("/categories/:slug", handler.GetCategory)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/categories/nope", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("invalid uuid in path", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		subRepo := new(MockSubcategoryRepository)
		handler := NewCategoryHandler(repo, subRepo, nil)

		r := setupTestRouter()
		r.DELETE("/categories/:id", handler.DeleteCategory)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/categories/not-a-uuid", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("missing category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		subRepo := new(MockSubcategoryRepository)
		handler := NewCategoryHandler(repo, subRepo, nil)

		id := uuid.New()
		repo.On("Delete", mock.Anything, id).Return(repository.ErrCategoryNotFound)

		r := setupTestRouter()
		r.DELETE("/categories/:id", handler.DeleteCategory)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/categories/"+id.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
