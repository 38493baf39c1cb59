package handlers

import (
	"log/slog"
	"time"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/cache"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/services"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	analyticsHandler *AnalyticsHandler
}

func NewHandlerManager(
	analyticsService services.AnalyticsService,
	exportService services.ExportService,
	validator *validator.Validator,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		analyticsHandler: NewAnalyticsHandler(analyticsService, exportService, validator, cacheService, cacheTTL, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "content-analytics",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/reports", hm.analyticsHandler.GetReport)
			analytics.GET("/reports/export", hm.analyticsHandler.ExportReport)
		}
	}
}
