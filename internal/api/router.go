package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/api/handlers"
	"github.com/jafarshop/shopsync/internal/api/middleware"
	"github.com/jafarshop/shopsync/internal/config"
	"github.com/jafarshop/shopsync/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, processor handlers.OrderProcessor, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(customRecovery(logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Shop Sync",
			"endpoints": []string{
				"GET /health",
				"POST " + service.OrdersPaidPath,
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Shopify orders/paid webhook: delivery-estimate enrichment
	router.POST(service.OrdersPaidPath, handlers.HandleOrdersPaidWebhook(cfg, processor, logger))

	return router
}

// customRecovery logs panics and converts them into a 500 response
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		)
	}
}
