package api

import (
	"context"
	"net/http"
	"time"

	"tourist-guide/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// NewRouter wires the query endpoints, the probes and /metrics.
func NewRouter(h *Handler, checks map[string]ReadinessCheck, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log.Named("http")))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/ready", readyHandler(checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	tourism := router.Group("/api/tourism")
	{
		tourism.POST("/query", h.Query)
		tourism.POST("/parse", h.Parse)
	}
	return router
}

func readyHandler(checks map[string]ReadinessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		failed := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"failed": failed,
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("request served", fields)
			return
		}
		log.Info("request served", fields)
	}
}
