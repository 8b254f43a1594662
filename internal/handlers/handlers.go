package handlers

import (
	"net/http"
	"strconv"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message, field string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
			Field:   field,
		},
	})
}

func respondNotFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, "NOT_FOUND", message, "")
}

func respondInternal(c *gin.Context, message string) {
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, "")
}

func respondValidation(c *gin.Context, message, field string) {
	respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", message, field)
}

// parseID parses the :id path parameter, writing the error response itself
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid UUID in path", "id")
		return uuid.Nil, false
	}
	return id, true
}

// pageFromQuery reads page/page_size query parameters with catalog defaults.
// "limit" is accepted as an alias for page_size.
func pageFromQuery(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", c.DefaultQuery("limit", "0")))
	return repository.NormalizePage(page, size)
}
