package handlers

import (
	"errors"
	"net/http"

	"catalog-service/internal/events"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	repo            repository.CategoryRepositoryInterface
	subRepo         repository.SubcategoryRepositoryInterface
	eventsPublisher *events.Publisher
}

func NewCategoryHandler(repo repository.CategoryRepositoryInterface, subRepo repository.SubcategoryRepositoryInterface, eventsPublisher *events.Publisher) *CategoryHandler {
	return &CategoryHandler{
		repo:            repo,
		subRepo:         subRepo,
		eventsPublisher: eventsPublisher,
	}
}

// GetCategories returns all categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} models.CategoryListResponse
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// GetCategory returns one category by slug
// @Summary Get category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.CategoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{slug} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondNotFound(c, "Category not found")
			return
		}
		respondInternal(c, "Failed to fetch category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// GetCategorySubcategories returns the subcategories under a category
// @Summary List subcategories of a category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.SubcategoryListResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{slug}/subcategories [get]
func (h *CategoryHandler) GetCategorySubcategories(c *gin.Context) {
	category, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondNotFound(c, "Category not found")
			return
		}
		respondInternal(c, "Failed to fetch category")
		return
	}

	subcategories, err := h.subRepo.GetByCategory(c.Request.Context(), category.ID)
	if err != nil {
		respondInternal(c, "Failed to fetch subcategories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subcategories})
}

// CreateCategory creates a new category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.CategoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}
	if !models.ValidCategoryType(req.Type) {
		respondValidation(c, "Unknown category type: "+string(req.Type), "type")
		return
	}

	category := models.Category{
		ID:   uuid.New(),
		Name: req.Name,
		Type: req.Type,
	}
	if err := h.repo.Create(c.Request.Context(), &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "ALREADY_EXISTS", "A category with this name already exists", "name")
			return
		}
		respondInternal(c, "Failed to create category")
		return
	}

	h.eventsPublisher.PublishCategoryChanged(category.ID.String(), category.Slug, category.Name)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}

// UpdateCategory updates a category. Renames never change the slug.
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body models.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} models.CategoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	category, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondNotFound(c, "Category not found")
			return
		}
		respondInternal(c, "Failed to fetch category")
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		if !models.ValidCategoryType(*req.Type) {
			respondValidation(c, "Unknown category type: "+string(*req.Type), "type")
			return
		}
		category.Type = *req.Type
	}

	if err := h.repo.Update(c.Request.Context(), category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "ALREADY_EXISTS", "A category with this name already exists", "name")
			return
		}
		respondInternal(c, "Failed to update category")
		return
	}

	h.eventsPublisher.PublishCategoryChanged(category.ID.String(), category.Slug, category.Name)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// DeleteCategory removes a category and, via FK cascade, its subcategories
// and their products
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondNotFound(c, "Category not found")
			return
		}
		respondInternal(c, "Failed to delete category")
		return
	}

	h.eventsPublisher.PublishCategoryChanged(id.String(), "", "")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}
