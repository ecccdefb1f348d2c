package http

import (
	"github.com/gin-gonic/gin"
	"github.com/Kullendorff/systembolaget/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		wines := v1.Group("/wines")
		{
			wines.POST("/search", handler.Search)
			wines.POST("/ask", handler.Ask)
			wines.POST("/lookup", handler.Lookup)
			wines.GET("/:id", handler.Details)
		}
		v1.GET("/recommendations", handler.Recommend)
	}

	return router
}
