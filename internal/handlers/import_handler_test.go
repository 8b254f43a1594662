package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func importRequest(t *testing.T, filename, content string, validateOnly bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	if validateOnly {
		assert.NoError(t, writer.WriteField("validateOnly", "true"))
	}
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/admin/products/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportProducts(t *testing.T) {
	subcategory := &models.Subcategory{ID: uuid.New(), Name: "Switches", Slug: "switches"}

	t.Run("unknown subcategory aborts whole import", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockSubRepo := new(MockSubcategoryRepository)
		mockSubRepo.On("GetBySlug", mock.Anything, "switches").Return(subcategory, nil)
		mockSubRepo.On("GetBySlug", mock.Anything, "no-such").Return(nil, repository.ErrSubcategoryNotFound)

		handler := NewImportHandler(mockRepo, mockSubRepo)
		router := setupTestRouter()
		router.POST("/admin/products/import", handler.ImportProducts)

		csv := "name,subcategory,stock\nSwitch A,switches,5\nSwitch B,no-such,3\nSwitch C,switches,1\n"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, importRequest(t, "products.csv", csv, false))

		assert.Equal(t, http.StatusOK, w.Code)

		var result ImportResult
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.False(t, result.Success)
		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 0, result.SuccessCount)
		assert.Equal(t, 3, result.FailedCount)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, "UNKNOWN_SUBCATEGORY", result.Errors[0].Code)
		assert.Equal(t, 3, result.Errors[0].Row)

		// Nothing is written when any reference is unresolved.
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates products when all references resolve", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockSubRepo := new(MockSubcategoryRepository)
		mockSubRepo.On("GetBySlug", mock.Anything, "switches").Return(subcategory, nil)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.SubcategoryID == subcategory.ID && p.Name != ""
		}), mock.Anything).Return(nil)

		handler := NewImportHandler(mockRepo, mockSubRepo)
		router := setupTestRouter()
		router.POST("/admin/products/import", handler.ImportProducts)

		csv := "name,subcategory,price,stock\nSwitch A,switches,149.99,5\nSwitch B,switches,,0\n"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, importRequest(t, "products.csv", csv, false))

		assert.Equal(t, http.StatusOK, w.Code)

		var result ImportResult
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Equal(t, 2, result.SuccessCount)
		assert.Equal(t, 0, result.FailedCount)
		assert.Len(t, result.CreatedIDs, 2)
		mockRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("validate only reports without writing", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockSubRepo := new(MockSubcategoryRepository)
		mockSubRepo.On("GetBySlug", mock.Anything, "switches").Return(subcategory, nil)

		handler := NewImportHandler(mockRepo, mockSubRepo)
		router := setupTestRouter()
		router.POST("/admin/products/import", handler.ImportProducts)

		csv := "name,subcategory,price\nSwitch A,switches,149.99\nSwitch B,switches,not-a-price\n"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, importRequest(t, "products.csv", csv, true))

		assert.Equal(t, http.StatusOK, w.Code)

		var result ImportResult
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.False(t, result.Success)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 1, result.FailedCount)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, "INVALID_PRICE", result.Errors[0].Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lookup backend failure is a server error, not bad input", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockSubRepo := new(MockSubcategoryRepository)
		mockSubRepo.On("GetBySlug", mock.Anything, "switches").Return(nil, errors.New("connection refused"))

		handler := NewImportHandler(mockRepo, mockSubRepo)
		router := setupTestRouter()
		router.POST("/admin/products/import", handler.ImportProducts)

		csv := "name,subcategory\nSwitch A,switches\n"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, importRequest(t, "products.csv", csv, false))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unsupported file extension", func(t *testing.T) {
		handler := NewImportHandler(new(MockProductRepository), new(MockSubcategoryRepository))
		router := setupTestRouter()
		router.POST("/admin/products/import", handler.ImportProducts)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, importRequest(t, "products.txt", "name,subcategory\n", false))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp models.ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_FORMAT", resp.Error.Code)
	})
}
