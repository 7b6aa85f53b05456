package api

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/steamvault/inventory-tracker/internal/api/handlers"
	"github.com/steamvault/inventory-tracker/internal/config"
	"github.com/steamvault/inventory-tracker/internal/metrics"
	"github.com/steamvault/inventory-tracker/internal/services"
)

const templatesGlob = "web/templates/*.html"

func SetupRouter(trackerService *services.TrackerService, store *services.PriceStore, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))
	router.Use(metricsMiddleware())

	// Initialize handlers
	trackHandler := handlers.NewTrackHandler(trackerService, cfg)
	historyHandler := handlers.NewHistoryHandler(store)

	// HTML form surface; only wired when the templates directory is present
	// (it is absent in test binaries run from the package directory)
	if dirExists("web/templates") {
		router.LoadHTMLGlob(templatesGlob)
		router.GET("/", trackHandler.ShowForm)
		router.POST("/track", trackHandler.Track)
	}

	// API routes
	api := router.Group("/api")
	{
		api.GET("/track", trackHandler.TrackJSON)
		api.GET("/items/:name/history", historyHandler.GetItemHistory)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// metricsMiddleware records request counts and latency per route.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
