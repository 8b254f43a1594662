package handlers

import (
	"net/http"

	"catalog-service/internal/cache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthCheck handles health check requests
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catalog-service",
	})
}

type DiagnosticsHandler struct {
	db    *gorm.DB
	cache *cache.Catalog
}

func NewDiagnosticsHandler(db *gorm.DB, catalogCache *cache.Catalog) *DiagnosticsHandler {
	return &DiagnosticsHandler{db: db, cache: catalogCache}
}

// ReadinessCheck reports whether the database connection is usable
func (h *DiagnosticsHandler) ReadinessCheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not ready",
			"service": "catalog-service",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": "catalog-service",
	})
}

// CacheCheck runs a write-read-delete round trip against the cache backend
func (h *DiagnosticsHandler) CacheCheck(c *gin.Context) {
	if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"cache":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"cache":  "ok",
	})
}
