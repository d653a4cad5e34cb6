// internal/api/handlers/insights.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/opsintel/chainsight/internal/service"
)

// InsightHandler serves the dashboard pages.
type InsightHandler struct {
	insights *service.InsightService
}

func NewInsightHandler(insights *service.InsightService) *InsightHandler {
	return &InsightHandler{insights: insights}
}

// GetOverview handles GET /api/v1/insights/overview
func (h *InsightHandler) GetOverview(c *gin.Context) {
	page, err := h.insights.Overview(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetRisk handles GET /api/v1/insights/risk
func (h *InsightHandler) GetRisk(c *gin.Context) {
	page, err := h.insights.Risk(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPerformance handles GET /api/v1/insights/performance
func (h *InsightHandler) GetPerformance(c *gin.Context) {
	page, err := h.insights.Performance(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetInventory handles GET /api/v1/insights/inventory
func (h *InsightHandler) GetInventory(c *gin.Context) {
	page, err := h.insights.Inventory(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetCost handles GET /api/v1/insights/cost
func (h *InsightHandler) GetCost(c *gin.Context) {
	page, err := h.insights.Cost(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetRecommendations handles GET /api/v1/insights/recommendations
func (h *InsightHandler) GetRecommendations(c *gin.Context) {
	recs, err := h.insights.Recommendations(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// GetSnapshot handles GET /api/v1/insights/snapshot
func (h *InsightHandler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.insights.Snapshot(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func errorResponse(c *gin.Context, statusCode int, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(statusCode, gin.H{"error": err.Error()})
}
