// Package server assembles the HTTP router from a bootstrapped kernel.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zfogg/reelmatch/internal/config"
	"github.com/zfogg/reelmatch/internal/handlers"
	"github.com/zfogg/reelmatch/internal/kernel"
	"github.com/zfogg/reelmatch/internal/middleware"
)

// ServiceName identifies the server in health checks and traces.
const ServiceName = "reelmatch"

// NewRouter builds the gin engine: global middleware, /health, /metrics,
// and the rate-limited, session-scoped /api/v1 group.
func NewRouter(k *kernel.Kernel, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Telemetry.Enabled {
		r.Use(middleware.Tracing(ServiceName)...)
	}
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.SessionHeader, middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.SessionHeader, middleware.RequestIDHeader, "Retry-After"}
	r.Use(cors.New(corsConfig))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   ServiceName,
			"movies":    k.Catalog().Len(),
			"sessions":  k.Sessions().Len(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandlers(k.Engine(), k.Gateway(), k.Sessions())

	api := r.Group("/api/v1")
	api.Use(k.RateLimiter().Handler())
	api.Use(middleware.Session(k.Sessions(), middleware.SessionConfig{
		CookieMaxAge: cfg.Session.IdleTimeout,
		Secure:       cfg.IsProduction(),
	}))
	h.Register(api)

	return r
}
