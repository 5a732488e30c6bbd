package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"park-stats-api/internal/services"
)

// StatsPath is the route the stats endpoint is served on
const StatsPath = "/api/park-stats"

// Version is reported by the health endpoint
const Version = "1.0.0"

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	StatsService services.StatsService
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	statsHandler := NewStatsHandler(config.StatsService)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "park-stats-api",
			"version":   Version,
			"timestamp": time.Now().UTC(),
		})
	})

	// Any method is answered with stats
	router.Any(StatsPath, statsHandler.GetStats)
}
