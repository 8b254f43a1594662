package handlers

import (
	"errors"
	"net/http"

	"catalog-service/internal/models"
	"catalog-service/internal/presenters"
	"catalog-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogHandler struct {
	repo repository.BlogRepositoryInterface
	urls presenters.URLResolver
}

func NewBlogHandler(repo repository.BlogRepositoryInterface, urls presenters.URLResolver) *BlogHandler {
	return &BlogHandler{repo: repo, urls: urls}
}

// GetBlogs returns published blog posts, newest first
// @Summary List published blog posts
// @Tags blogs
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /blogs [get]
func (h *BlogHandler) GetBlogs(c *gin.Context) {
	blogs, err := h.repo.GetAll(c.Request.Context(), true)
	if err != nil {
		respondInternal(c, "Failed to fetch blog posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": presenters.ToBlogViews(blogs, h.urls)})
}

// GetBlog returns one published blog post by slug
// @Summary Get blog post by slug
// @Tags blogs
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /blogs/{slug} [get]
func (h *BlogHandler) GetBlog(c *gin.Context) {
	blog, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			respondNotFound(c, "Blog post not found")
			return
		}
		respondInternal(c, "Failed to fetch blog post")
		return
	}
	if !blog.IsPublished {
		respondNotFound(c, "Blog post not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": presenters.ToBlogView(blog, h.urls)})
}

// ListBlogs returns every blog post, drafts included, for the admin screen
// @Summary List all blog posts
// @Tags blogs
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /admin/blogs [get]
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	blogs, err := h.repo.GetAll(c.Request.Context(), false)
	if err != nil {
		respondInternal(c, "Failed to fetch blog posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blogs})
}

// CreateBlog creates a blog post
// @Summary Create blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Param blog body models.CreateBlogRequest true "Blog post"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/blogs [post]
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req models.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	blog := models.Blog{
		ID:         uuid.New(),
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		ImageRef:   req.ImageRef,
		SourceName: req.SourceName,
		SourceURL:  req.SourceURL,
	}
	if req.IsPublished != nil {
		blog.IsPublished = *req.IsPublished
	}

	if err := h.repo.Create(c.Request.Context(), &blog); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "ALREADY_EXISTS", "A blog post with this slug already exists", "title")
			return
		}
		respondInternal(c, "Failed to create blog post")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": blog})
}

// UpdateBlog updates a blog post. Title changes never change the slug.
// @Summary Update blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path string true "Blog ID"
// @Param blog body models.UpdateBlogRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/blogs/{id} [put]
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	blog, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			respondNotFound(c, "Blog post not found")
			return
		}
		respondInternal(c, "Failed to fetch blog post")
		return
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Excerpt != nil {
		blog.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.ImageRef != nil {
		blog.ImageRef = req.ImageRef
	}
	if req.SourceName != nil {
		blog.SourceName = req.SourceName
	}
	if req.SourceURL != nil {
		blog.SourceURL = req.SourceURL
	}
	if req.IsPublished != nil {
		blog.IsPublished = *req.IsPublished
	}

	if err := h.repo.Update(c.Request.Context(), blog); err != nil {
		respondInternal(c, "Failed to update blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blog})
}

// DeleteBlog removes a blog post
// @Summary Delete blog post
// @Tags blogs
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/blogs/{id} [delete]
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			respondNotFound(c, "Blog post not found")
			return
		}
		respondInternal(c, "Failed to delete blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post deleted"})
}
