package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves the banner, health and fallback routes
type SystemHandler struct {
	version   string
	startedAt time.Time
	now       func() time.Time
}

func NewSystemHandler(deps *Dependencies) *SystemHandler {
	startedAt := deps.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	version := deps.Version
	if version == "" {
		version = "1.0.0"
	}
	return &SystemHandler{version: version, startedAt: startedAt, now: time.Now}
}

// Root handles GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Tunel Admin API",
		"version":   h.version,
		"status":    "active",
		"timestamp": h.now().UTC(),
		"endpoints": gin.H{
			"auth":      "/api/auth",
			"jobs":      "/api/jobs",
			"companies": "/api/companies",
			"content":   "/api/content",
			"analytics": "/api/analytics",
			"public":    "/api/public",
		},
	})
}

// Health handles GET /health. Uptime is in seconds.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"uptime":    h.now().Sub(h.startedAt).Seconds(),
		"timestamp": h.now().UTC(),
	})
}

// NoRoute answers unmatched routes
func (h *SystemHandler) NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":  "Endpoint not found",
		"path":   c.Request.URL.RequestURI(),
		"method": c.Request.Method,
	})
}
