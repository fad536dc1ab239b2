package api

import (
	"context"
	"net/http"
	"time"

	"fridge-chef/internal/api/handlers/health"
	"fridge-chef/internal/api/handlers/suggest"
	"fridge-chef/internal/api/middleware"
	"fridge-chef/internal/core/detect"
	"fridge-chef/internal/core/detect/cache"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Generous budget: a detector round trip plus matching.
	timeoutDuration = 30 * time.Second
)

// SetupRouter wires middleware, services and routes.
func SetupRouter(cfg *config.Config, cacheStore cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("detector_enabled", cfg.Detector.Enabled()),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Image.MaxSizeBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// The catalog and pantry are static configuration; the store swap
	// exists for hot reloads.
	store := recipe.NewStore(recipe.DefaultCatalog(), recipe.DefaultPantry())
	detector := detect.NewRoboflowClient(cfg, cacheStore)

	common.LogInfo("Services initialized",
		zap.Int("catalog_recipes", store.Catalog().Len()),
		zap.Int("pantry_items", len(store.Pantry())),
		zap.Bool("cache_enabled", cacheStore != nil),
		zap.String("detector_model", cfg.Detector.ModelURL),
	)

	suggestHandler := suggest.NewHandler(store, detector, cfg.Image.MaxSizeBytes)

	// Per-request timeout plus context injection for the health handlers.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("catalog_store", store)
		if cacheStore != nil {
			c.Set("cache", cacheStore)
		}

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		api.POST("/suggest", suggestHandler.HandleSuggest)
		api.POST("/suggest/image", suggestHandler.HandleSuggestImage)
		api.GET("/catalog", suggestHandler.HandleCatalog)
		api.GET("/pantry", suggestHandler.HandlePantry)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "resource not found",
			"code":  common.ErrCodeNotFound,
		})
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Image.MaxSizeBytes),
	)

	return router, nil
}
