// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/opsintel/chainsight/internal/api/handlers"
	"github.com/opsintel/chainsight/internal/api/middleware"
	"github.com/opsintel/chainsight/internal/service"
)

type Services struct {
	Insights *service.InsightService
	Uploads  *service.UploadService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Insights != nil {
			insightHandler := handlers.NewInsightHandler(services.Insights)
			insightGroup := apiGroup.Group("/insights")
			{
				insightGroup.GET("/overview", insightHandler.GetOverview)
				insightGroup.GET("/risk", insightHandler.GetRisk)
				insightGroup.GET("/performance", insightHandler.GetPerformance)
				insightGroup.GET("/inventory", insightHandler.GetInventory)
				insightGroup.GET("/cost", insightHandler.GetCost)
				insightGroup.GET("/recommendations", insightHandler.GetRecommendations)
				insightGroup.GET("/snapshot", insightHandler.GetSnapshot)
			}
		}

		if services.Uploads != nil {
			datasetHandler := handlers.NewDatasetHandler(services.Uploads)
			apiGroup.POST("/dataset/upload", datasetHandler.Upload)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
