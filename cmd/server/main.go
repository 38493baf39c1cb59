package main

import (
	"log/slog"
	"os"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/cache"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/config"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/handlers"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/repositories/postgres"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/services"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/utils"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/validator"
	"github.com/SatishBanchhere/abc-classes-sub002/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger *slog.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// The response cache is optional; with a zero TTL the service never
	// touches redis and every report is computed fresh.
	var cacheService cache.CacheService
	if cfg.CacheTTL > 0 {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewContentRepository(db)
	analyticsService := services.NewAnalyticsService(repo, publisher, logger)
	exportService := services.NewExportService(analyticsService, publisher, logger)
	requestValidator := validator.New()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(
		analyticsService,
		exportService,
		requestValidator,
		cacheService,
		cfg.CacheTTL,
		logger,
	)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting content analytics service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
