package handler

import (
	"net/http"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/analytics"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the reporting endpoints
type AnalyticsHandler struct {
	base
	analytics *analytics.Provider
	now       func() time.Time
}

func NewAnalyticsHandler(deps *Dependencies) *AnalyticsHandler {
	return &AnalyticsHandler{
		base:      newBase(deps, resourceNames{singular: "Metric", kind: "analytics"}),
		analytics: deps.Analytics,
		now:       time.Now,
	}
}

// Overview handles GET /api/analytics
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"analytics":   h.analytics.Overview(),
		"generatedAt": h.now().UTC(),
		"period":      analytics.OverviewPeriod,
	})
}

// Dashboard handles GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"dashboard":   h.analytics.Dashboard(),
		"refreshedAt": h.now().UTC(),
	})
}

// Metric handles GET /api/analytics/metrics/:metric
func (h *AnalyticsHandler) Metric(c *gin.Context) {
	name := c.Param("metric")
	m, err := h.analytics.Metric(name)
	if err != nil {
		h.respondError(c, err, "Failed to fetch metric data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"metric":      name,
		"period":      c.DefaultQuery("period", analytics.DefaultPeriod),
		"granularity": c.DefaultQuery("granularity", analytics.DefaultGranularity),
		"data":        m,
	})
}
