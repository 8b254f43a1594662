package handlers

import (
	"errors"
	"net/http"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/presenters"
	"catalog-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HeroBannerHandler struct {
	repo repository.HeroBannerRepositoryInterface
	urls presenters.URLResolver
}

func NewHeroBannerHandler(repo repository.HeroBannerRepositoryInterface, urls presenters.URLResolver) *HeroBannerHandler {
	return &HeroBannerHandler{repo: repo, urls: urls}
}

// GetActiveBanners returns banners eligible for display right now
// @Summary List active hero banners
// @Tags banners
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /banners/active [get]
func (h *HeroBannerHandler) GetActiveBanners(c *gin.Context) {
	banners, err := h.repo.GetActive(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondInternal(c, "Failed to fetch banners")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": presenters.ToHeroBannerViews(banners, h.urls)})
}

// ListBanners returns every banner for the admin screen
// @Summary List all hero banners
// @Tags banners
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /admin/banners [get]
func (h *HeroBannerHandler) ListBanners(c *gin.Context) {
	banners, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch banners")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": banners})
}

// CreateBanner creates a hero banner
// @Summary Create hero banner
// @Tags banners
// @Accept json
// @Produce json
// @Param banner body models.CreateHeroBannerRequest true "Banner"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/banners [post]
func (h *HeroBannerHandler) CreateBanner(c *gin.Context) {
	var req models.CreateHeroBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	banner := models.HeroBanner{
		ID:           uuid.New(),
		CampaignName: req.CampaignName,
		DisplayMode:  req.DisplayMode,
		IsActive:     true,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		PosterImage:  req.PosterImage,
		PosterLink:   req.PosterLink,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		ButtonText:   req.ButtonText,
		ButtonLink:   req.ButtonLink,
		Image1:       req.Image1,
		Image2:       req.Image2,
		Layout:       models.BannerLayoutImageRight,
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		banner.DisplayOrder = *req.DisplayOrder
	}
	if req.Layout != nil {
		banner.Layout = *req.Layout
	}

	if err := h.repo.Create(c.Request.Context(), &banner); err != nil {
		if errors.Is(err, models.ErrPosterImageRequired) || errors.Is(err, models.ErrStandardFieldsRequired) {
			respondValidation(c, err.Error(), "displayMode")
			return
		}
		respondInternal(c, "Failed to create banner")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": banner})
}

// UpdateBanner updates a hero banner, re-validating the mode field rules
// @Summary Update hero banner
// @Tags banners
// @Accept json
// @Produce json
// @Param id path string true "Banner ID"
// @Param banner body models.UpdateHeroBannerRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/banners/{id} [put]
func (h *HeroBannerHandler) UpdateBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateHeroBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error(), "")
		return
	}

	banner, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			respondNotFound(c, "Banner not found")
			return
		}
		respondInternal(c, "Failed to fetch banner")
		return
	}

	if req.CampaignName != nil {
		banner.CampaignName = *req.CampaignName
	}
	if req.DisplayMode != nil {
		banner.DisplayMode = *req.DisplayMode
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		banner.DisplayOrder = *req.DisplayOrder
	}
	if req.StartDate != nil {
		banner.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		banner.EndDate = req.EndDate
	}
	if req.PosterImage != nil {
		banner.PosterImage = req.PosterImage
	}
	if req.PosterLink != nil {
		banner.PosterLink = req.PosterLink
	}
	if req.Title != nil {
		banner.Title = req.Title
	}
	if req.Subtitle != nil {
		banner.Subtitle = req.Subtitle
	}
	if req.Description != nil {
		banner.Description = req.Description
	}
	if req.ButtonText != nil {
		banner.ButtonText = req.ButtonText
	}
	if req.ButtonLink != nil {
		banner.ButtonLink = req.ButtonLink
	}
	if req.Image1 != nil {
		banner.Image1 = req.Image1
	}
	if req.Image2 != nil {
		banner.Image2 = req.Image2
	}
	if req.Layout != nil {
		banner.Layout = *req.Layout
	}

	if err := h.repo.Update(c.Request.Context(), banner); err != nil {
		if errors.Is(err, models.ErrPosterImageRequired) || errors.Is(err, models.ErrStandardFieldsRequired) {
			respondValidation(c, err.Error(), "displayMode")
			return
		}
		respondInternal(c, "Failed to update banner")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": banner})
}

// DeleteBanner removes a hero banner
// @Summary Delete hero banner
// @Tags banners
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/banners/{id} [delete]
func (h *HeroBannerHandler) DeleteBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			respondNotFound(c, "Banner not found")
			return
		}
		respondInternal(c, "Failed to delete banner")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Banner deleted"})
}
