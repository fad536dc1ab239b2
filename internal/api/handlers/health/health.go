package health

import (
	"net/http"
	"runtime"
	"time"

	"fridge-chef/internal/core/detect/cache"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse is the /health body.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// CatalogStatus summarizes the live recipe catalog.
type CatalogStatus struct {
	Recipes     int  `json:"recipes"`
	PantryItems int  `json:"pantry_items"`
	DetectorOn  bool `json:"detector_enabled"`
}

// HealthCheck reports process, catalog and cache state.
func HealthCheck(c *gin.Context) {
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if v, ok := c.Get("catalog_store"); ok {
		if store, ok := v.(*recipe.Store); ok {
			response.Catalog = &CatalogStatus{
				Recipes:     store.Catalog().Len(),
				PantryItems: len(store.Pantry()),
				DetectorOn:  config.Detector.Enabled(),
			}
		}
	}

	if v, ok := c.Get("cache"); ok {
		if store, ok := v.(cache.Store); ok && store != nil {
			response.Cache = store.Stats()
		}
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck reports the service is ready to take traffic.
func ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck reports the process is alive.
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
