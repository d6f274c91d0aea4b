package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP router with all routes configured
func NewServer(handler *Handler, adminKey string) *gin.Engine {
	// Gin mode can still be overridden via GIN_MODE environment variable
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Admin-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, adminKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, adminKey string) {
	r.GET("/health", handler.GetHealth)

	trends := r.Group("/api/trends")
	{
		trends.GET("", handler.GetTrends)
		trends.GET("/all", handler.GetAllTrends)
		trends.GET("/category/:category", handler.GetCategoryTrends)
		trends.GET("/version", handler.GetVersion)
		trends.GET("/search", handler.Search)
	}

	// Admin endpoints (conditionally enabled with authentication)
	if adminKey != "" {
		admin := r.Group("/api/admin")
		admin.Use(authMiddleware(adminKey))
		{
			admin.GET("/stats", handler.AdminStats)
			admin.GET("/settings", handler.AdminGetSettings)
			admin.POST("/settings/rendering", handler.AdminSetRendering)
			admin.POST("/settings/articles-limit", handler.AdminSetArticlesLimit)
			admin.POST("/settings/sort-order", handler.AdminSetSortOrder)
			admin.POST("/settings/priority", handler.AdminSetPriority)
			admin.GET("/cache/articles", handler.AdminCacheArticles)
			admin.POST("/cache/clear", handler.AdminCacheClear)
			admin.POST("/news/refresh", handler.AdminTriggerRefresh)
			admin.GET("/news/refresh/status", handler.AdminRefreshStatus)
			admin.POST("/news/force-update", handler.AdminForceUpdate)
			admin.POST("/cloud/sync", handler.AdminCloudSync)
			admin.POST("/cloud/load", handler.AdminCloudLoad)
		}
		slog.Info("Admin endpoints enabled with authentication")
	} else {
		slog.Info("Admin endpoints disabled (ADMIN_KEY not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"trends":   "/api/trends",
			"all":      "/api/trends/all",
			"category": "/api/trends/category/<name>",
			"version":  "/api/trends/version",
			"search":   "/api/trends/search?q=<query>",
			"health":   "/health",
		}

		if adminKey != "" {
			endpoints["admin"] = "/api/admin/* (requires X-Admin-Key header)"
		}

		c.JSON(200, gin.H{
			"service":     "News Trends",
			"version":     "1.0.0",
			"description": "Multi-source news aggregator with staleness-aware caching",
			"endpoints":   endpoints,
			"admin_status": map[string]interface{}{
				"enabled":       adminKey != "",
				"auth_required": adminKey != "",
				"header":        "X-Admin-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for admin endpoints
func authMiddleware(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-Admin-Key")

		// Also accept the key as a query parameter for curl convenience
		if providedKey == "" {
			providedKey = c.Query("admin_key")
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Admin key required",
				"message": "Provide the key in the X-Admin-Key header or admin_key query parameter",
			})
			c.Abort()
			return
		}

		if providedKey != adminKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid admin key",
				"message": "The provided admin key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
