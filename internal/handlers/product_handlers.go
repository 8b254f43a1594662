package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-service/internal/events"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/presenters"
	"catalog-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	repo            repository.ProductRepositoryInterface
	subRepo         repository.SubcategoryRepositoryInterface
	eventsPublisher *events.Publisher
	urls            presenters.URLResolver
}

func NewProductHandler(repo repository.ProductRepositoryInterface, subRepo repository.SubcategoryRepositoryInterface, eventsPublisher *events.Publisher, urls presenters.URLResolver) *ProductHandler {
	return &ProductHandler{
		repo:            repo,
		subRepo:         subRepo,
		eventsPublisher: eventsPublisher,
		urls:            urls,
	}
}

// resolveSubcategory looks up a subcategory by id or slug
func (h *ProductHandler) resolveSubcategory(c *gin.Context, ref string) (*models.Subcategory, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return h.subRepo.GetByID(c.Request.Context(), id)
	}
	return h.subRepo.GetBySlug(c.Request.Context(), ref)
}

// GetProductsBySubcategory returns a page of products under a subcategory
// @Summary List products in a subcategory
// @Tags products
// @Produce json
// @Param slug path string true "Subcategory slug"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /subcategories/{slug}/products [get]
func (h *ProductHandler) GetProductsBySubcategory(c *gin.Context) {
	subcategory, err := h.subRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrSubcategoryNotFound) {
			respondNotFound(c, "Subcategory not found")
			return
		}
		respondInternal(c, "Failed to fetch subcategory")
		return
	}

	page := pageFromQuery(c)
	products, total, err := h.repo.ListBySubcategory(c.Request.Context(), subcategory, page)
	if err != nil {
		respondInternal(c, "Failed to fetch products")
		return
	}

	viewer := middleware.IsAuthenticated(c)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       presenters.ToProductViews(products, viewer, h.urls),
		"pagination": models.NewPaginationInfo(page.Number, page.Size, total),
	})
}

// GetProduct returns one product by slug with its specification tables
// @Summary Get product by slug
// @Tags products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{slug} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		respondInternal(c, "Failed to fetch product")
		return
	}

	view := presenters.ToProductView(product, middleware.IsAuthenticated(c), h.urls)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": view})
}

// GetRelatedProducts returns other products from the same subcategory
// @Summary List related products
// @Tags products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{slug}/related [get]
func (h *ProductHandler) GetRelatedProducts(c *gin.Context) {
	product, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		respondInternal(c, "Failed to fetch product")
		return
	}

	related, err := h.repo.Related(c.Request.Context(), product)
	if err != nil {
		respondInternal(c, "Failed to fetch related products")
		return
	}

	viewer := middleware.IsAuthenticated(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": presenters.ToProductViews(related, viewer, h.urls)})
}

// GetPopularProducts returns products flagged popular
// @Summary List popular products
// @Tags products
// @Produce json
// @Param limit query int false "Maximum results"
// @Success 200 {object} models.SuccessResponse
// @Router /products/popular [get]
func (h *ProductHandler) GetPopularProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultPopularLimit)))
	if limit <= 0 || limit > repository.DefaultPopularLimit {
		limit = repository.DefaultPopularLimit
	}

	products, err := h.repo.Popular(c.Request.Context(), limit)
	if err != nil {
		respondInternal(c, "Failed to fetch popular products")
		return
	}

	viewer := middleware.IsAuthenticated(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": presenters.ToProductViews(products, viewer, h.urls)})
}

// ListProducts returns a page of all products for the admin screen, optionally
// narrowed to one subcategory via ?subcategory=<id-or-slug>
// @Summary List all products
// @Tags products
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param subcategory query string false "Subcategory id or slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page := pageFromQuery(c)

	var (
		products []models.Product
		total    int64
		err      error
	)
	if ref := c.Query("subcategory"); ref != "" {
		subcategory, subErr := h.resolveSubcategory(c, ref)
		if subErr != nil {
			if errors.Is(subErr, repository.ErrSubcategoryNotFound) {
				respondNotFound(c, "Subcategory not found")
				return
			}
			respondInternal(c, "Failed to resolve subcategory")
			return
		}
		products, total, err = h.repo.ListBySubcategory(c.Request.Context(), subcategory, page)
	} else {
		products, total, err = h.repo.ListAll(c.Request.Context(), page)
	}
	if err != nil {
		respondInternal(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       products,
		"pagination": models.NewPaginationInfo(page.Number, page.Size, total),
	})
}

// CreateProduct creates a product under the referenced subcategory. A missing
// subcategory reference is a validation error, not a not-found.
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}
	if req.Subcategory == nil || *req.Subcategory == "" {
		respondValidation(c, "A subcategory reference is required", "subcategory")
		return
	}

	subcategory, err := h.resolveSubcategory(c, *req.Subcategory)
	if err != nil {
		if errors.Is(err, repository.ErrSubcategoryNotFound) {
			respondValidation(c, "Referenced subcategory does not exist", "subcategory")
			return
		}
		respondInternal(c, "Failed to resolve subcategory")
		return
	}

	h.createUnder(c, subcategory, req)
}

// CreateProductInSubcategory creates a product under the subcategory named in
// the path. A body-borne subcategory reference, if present, is ignored.
// @Summary Create product in a subcategory
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Subcategory id or slug"
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/subcategories/{id}/products [post]
func (h *ProductHandler) CreateProductInSubcategory(c *gin.Context) {
	subcategory, err := h.resolveSubcategory(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrSubcategoryNotFound) {
			respondNotFound(c, "Subcategory not found")
			return
		}
		respondInternal(c, "Failed to resolve subcategory")
		return
	}

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	h.createUnder(c, subcategory, req)
}

// createUnder builds and persists a product owned by an already-resolved
// subcategory, shared by the flat and nested create endpoints.
func (h *ProductHandler) createUnder(c *gin.Context, subcategory *models.Subcategory, req models.CreateProductRequest) {
	product := models.Product{
		ID:                 uuid.New(),
		Name:               req.Name,
		Brand:              req.Brand,
		SKU:                req.SKU,
		Price:              req.Price,
		Description:        req.Description,
		Features:           req.Features,
		ImageRef:           req.ImageRef,
		DocumentationURL:   req.DocumentationURL,
		DocumentationLabel: req.DocumentationLabel,
		MetaTitle:          req.MetaTitle,
		MetaDescription:    req.MetaDescription,
		SubcategoryID:      subcategory.ID,
	}
	if req.PriceVisibility != nil {
		product.PriceVisibility = *req.PriceVisibility
	} else {
		product.PriceVisibility = models.PricePublic
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			respondValidation(c, "Stock cannot be negative", "stock")
			return
		}
		product.Stock = *req.Stock
	}
	if req.IsPopular != nil {
		product.IsPopular = *req.IsPopular
	}

	if err := h.repo.Create(c.Request.Context(), &product, req.Specifications); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "ALREADY_EXISTS", "A product with this slug already exists", "slug")
			return
		}
		respondInternal(c, "Failed to create product")
		return
	}

	h.eventsPublisher.PublishProductCreated(product.ID.String(), product.Slug, product.Name)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// UpdateProduct updates a product. The slug never changes; specification
// tables are replaced when the request carries a specifications list.
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	product, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		respondInternal(c, "Failed to fetch product")
		return
	}

	if req.Subcategory != nil && *req.Subcategory != "" {
		subcategory, err := h.resolveSubcategory(c, *req.Subcategory)
		if err != nil {
			if errors.Is(err, repository.ErrSubcategoryNotFound) {
				respondValidation(c, "Referenced subcategory does not exist", "subcategory")
				return
			}
			respondInternal(c, "Failed to resolve subcategory")
			return
		}
		product.SubcategoryID = subcategory.ID
		product.Subcategory = nil
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = req.Brand
	}
	if req.SKU != nil {
		product.SKU = req.SKU
	}
	if req.Price != nil {
		product.Price = req.Price
	}
	if req.PriceVisibility != nil {
		product.PriceVisibility = *req.PriceVisibility
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Features != nil {
		product.Features = *req.Features
	}
	if req.ImageRef != nil {
		product.ImageRef = req.ImageRef
	}
	if req.DocumentationURL != nil {
		product.DocumentationURL = req.DocumentationURL
	}
	if req.DocumentationLabel != nil {
		product.DocumentationLabel = req.DocumentationLabel
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			respondValidation(c, "Stock cannot be negative", "stock")
			return
		}
		product.Stock = *req.Stock
	}
	if req.IsPopular != nil {
		product.IsPopular = *req.IsPopular
	}
	if req.MetaTitle != nil {
		product.MetaTitle = req.MetaTitle
	}
	if req.MetaDescription != nil {
		product.MetaDescription = req.MetaDescription
	}

	product.SpecificationTables = nil
	if err := h.repo.Update(c.Request.Context(), product, req.Specifications, req.Specifications != nil); err != nil {
		respondInternal(c, "Failed to update product")
		return
	}

	h.eventsPublisher.PublishProductUpdated(product.ID.String(), product.Slug, product.Name)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// UpdateProductStock sets the on-hand quantity; status follows from it
// @Summary Update product stock
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param stock body models.UpdateStockRequest true "New stock level"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id}/stock [patch]
func (h *ProductHandler) UpdateProductStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "stock")
		return
	}
	if *req.Stock < 0 {
		respondValidation(c, "Stock cannot be negative", "stock")
		return
	}

	product, err := h.repo.UpdateStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		respondInternal(c, "Failed to update stock")
		return
	}

	h.eventsPublisher.PublishStockChanged(product.ID.String(), product.Slug, product.Stock)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// DeleteProduct removes a product and its specification tables
// @Summary Delete product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		respondInternal(c, "Failed to fetch product")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondInternal(c, "Failed to delete product")
		return
	}

	h.eventsPublisher.PublishProductDeleted(product.ID.String(), product.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
