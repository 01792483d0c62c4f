package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
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
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Health endpoint
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		api.GET("/apod", handler.GetApod)
		api.GET("/apod/range", handler.GetApodRange)

		api.GET("/celestial-objects", handler.GetCelestialObjects)
		api.GET("/celestial-objects/:id", handler.GetCelestialObject)
		api.POST("/celestial-objects", handler.CreateCelestialObject)
		api.GET("/celestial-object-types", handler.GetCelestialObjectTypes)

		api.GET("/monthly-guide", handler.GetMonthlyGuide)

		api.GET("/observations", handler.GetObservations)
		api.POST("/observations", handler.CreateObservation)
		api.PATCH("/observations/:id", handler.UpdateObservation)
		api.DELETE("/observations/:id", handler.DeleteObservation)

		api.GET("/telescope-tips", handler.GetTelescopeTips)

		api.GET("/nasa-image-search", handler.NasaImageSearch)
	}

	// Auto-populate writes to the catalog, so it is the one surface worth
	// putting behind a key
	autoPopulate := r.Group("/api/auto-populate")
	if apiAccessKey != "" {
		autoPopulate.Use(authMiddleware(apiAccessKey))
		log.Printf("Auto-populate endpoints enabled with authentication")
	} else {
		log.Printf("Auto-populate endpoints enabled without authentication (API_ACCESS_KEY not set)")
	}
	{
		autoPopulate.POST("/preview", handler.AutoPopulatePreview)
		autoPopulate.POST("/confirm", handler.AutoPopulateConfirm)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"apod":         "/api/apod?date=YYYY-MM-DD",
			"apod_range":   "/api/apod/range?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD",
			"objects":      "/api/celestial-objects?type=&month=&hemisphere=",
			"object_types": "/api/celestial-object-types",
			"guide":        "/api/monthly-guide?month=&year=&hemisphere=",
			"observations": "/api/observations",
			"tips":         "/api/telescope-tips?category=",
			"image_search": "/api/nasa-image-search?object=<name>",
			"preview":      "/api/auto-populate/preview (POST)",
			"confirm":      "/api/auto-populate/confirm (POST)",
			"health":       "/health",
		}

		c.JSON(200, gin.H{
			"service":     "Stargazer",
			"version":     "1.0.0",
			"description": "Amateur astronomy observation tracker with auto-populated monthly viewing suggestions",
			"endpoints":   endpoints,
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// Check if API key is provided and matches
		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		// Continue to next middleware/handler
		c.Next()
	}
}
