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

type SubcategoryHandler struct {
	repo            repository.SubcategoryRepositoryInterface
	categoryRepo    repository.CategoryRepositoryInterface
	eventsPublisher *events.Publisher
}

func NewSubcategoryHandler(repo repository.SubcategoryRepositoryInterface, categoryRepo repository.CategoryRepositoryInterface, eventsPublisher *events.Publisher) *SubcategoryHandler {
	return &SubcategoryHandler{
		repo:            repo,
		categoryRepo:    categoryRepo,
		eventsPublisher: eventsPublisher,
	}
}

// resolveCategory looks up a category by id or slug
func (h *SubcategoryHandler) resolveCategory(c *gin.Context, ref string) (*models.Category, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return h.categoryRepo.GetByID(c.Request.Context(), id)
	}
	return h.categoryRepo.GetBySlug(c.Request.Context(), ref)
}

// GetSubcategories returns all subcategories
// @Summary List subcategories
// @Tags subcategories
// @Produce json
// @Success 200 {object} models.SubcategoryListResponse
// @Router /subcategories [get]
func (h *SubcategoryHandler) GetSubcategories(c *gin.Context) {
	subcategories, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch subcategories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subcategories})
}

// GetSubcategory returns one subcategory by slug, with its parent category
// @Summary Get subcategory by slug
// @Tags subcategories
// @Produce json
// @Param slug path string true "Subcategory slug"
// @Success 200 {object} models.SubcategoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /subcategories/{slug} [get]
func (h *SubcategoryHandler) GetSubcategory(c *gin.Context) {
	subcategory, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrSubcategoryNotFound) {
			respondNotFound(c, "Subcategory not found")
			return
		}
		respondInternal(c, "Failed to fetch subcategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subcategory})
}

// CreateSubcategory creates a subcategory under the category named in the URL.
// The :id segment accepts an id or a slug.
// @Summary Create subcategory
// @Tags subcategories
// @Accept json
// @Produce json
// @Param id path string true "Category id or slug"
// @Param subcategory body models.CreateSubcategoryRequest true "Subcategory"
// @Success 201 {object} models.SubcategoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/categories/{id}/subcategories [post]
func (h *SubcategoryHandler) CreateSubcategory(c *gin.Context) {
	var req models.CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	category, err := h.resolveCategory(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondValidation(c, "Referenced category does not exist", "category")
			return
		}
		respondInternal(c, "Failed to resolve category")
		return
	}

	subcategory := models.Subcategory{
		ID:         uuid.New(),
		Name:       req.Name,
		CategoryID: category.ID,
	}
	if err := h.repo.Create(c.Request.Context(), &subcategory); err != nil {
		respondInternal(c, "Failed to create subcategory")
		return
	}

	h.eventsPublisher.PublishCategoryChanged(subcategory.ID.String(), subcategory.Slug, subcategory.Name)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": subcategory})
}

// UpdateSubcategory updates a subcategory. Renames never change the slug;
// reparenting to another category is allowed.
// @Summary Update subcategory
// @Tags subcategories
// @Accept json
// @Produce json
// @Param id path string true "Subcategory ID"
// @Param subcategory body models.UpdateSubcategoryRequest true "Fields to update"
// @Success 200 {object} models.SubcategoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/subcategories/{id} [put]
func (h *SubcategoryHandler) UpdateSubcategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	subcategory, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSubcategoryNotFound) {
			respondNotFound(c, "Subcategory not found")
			return
		}
		respondInternal(c, "Failed to fetch subcategory")
		return
	}

	if req.Name != nil {
		subcategory.Name = *req.Name
	}
	if req.CategoryID != nil {
		if _, err := h.categoryRepo.GetByID(c.Request.Context(), *req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				respondValidation(c, "Referenced category does not exist", "categoryId")
				return
			}
			respondInternal(c, "Failed to resolve category")
			return
		}
		subcategory.CategoryID = *req.CategoryID
	}

	if err := h.repo.Update(c.Request.Context(), subcategory); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "ALREADY_EXISTS", "A subcategory with this slug already exists", "name")
			return
		}
		respondInternal(c, "Failed to update subcategory")
		return
	}

	h.eventsPublisher.PublishCategoryChanged(subcategory.ID.String(), subcategory.Slug, subcategory.Name)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subcategory})
}

// DeleteSubcategory removes a subcategory; its products cascade
// @Summary Delete subcategory
// @Tags subcategories
// @Produce json
// @Param id path string true "Subcategory ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/subcategories/{id} [delete]
func (h *SubcategoryHandler) DeleteSubcategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrSubcategoryNotFound) {
			respondNotFound(c, "Subcategory not found")
			return
		}
		respondInternal(c, "Failed to delete subcategory")
		return
	}

	h.eventsPublisher.PublishCategoryChanged(id.String(), "", "")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subcategory deleted"})
}
