package main

import (
	"log/slog"
	"os"

	"github.com/Carl2170/sw-conta-bi/internal/adapters/model"
	"github.com/Carl2170/sw-conta-bi/internal/adapters/source/graphql"
	"github.com/Carl2170/sw-conta-bi/internal/core/services"
	"github.com/Carl2170/sw-conta-bi/internal/handlers"
	"github.com/Carl2170/sw-conta-bi/internal/middleware"
	"github.com/Carl2170/sw-conta-bi/internal/utils"
	"github.com/Carl2170/sw-conta-bi/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the frozen risk classifier once per process. A missing or
	// incompatible artifact is fatal; there is no degraded scoring mode.
	classifier, err := model.NewForestClassifier(cfg.ModelPath)
	if err != nil {
		logger.Error("Failed to load risk model", slog.String("path", cfg.ModelPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Risk model loaded", slog.String("path", cfg.ModelPath))

	// Record source adapter against the remote billing data service
	sourceClient := graphql.NewClient(cfg.SourceURL, cfg.SourceTimeout)
	recordSource := graphql.NewRecordSource(sourceClient)

	serviceContainer := services.NewServiceContainer(cfg, recordSource, classifier)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The dashboard frontend is served from a different origin
	r.Use(cors.Default())

	// Rate limiting, keyed by client IP
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	// Usage analytics; a no-op when no API key is configured
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	handlers.RegisterRoutes(r, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
