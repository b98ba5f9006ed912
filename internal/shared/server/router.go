package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/reports"
	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/server/middleware"
	"readiness-backend/internal/shared/server/respond"
)

// RouterDeps carries everything NewRouter needs to register routes.
type RouterDeps struct {
	Config         config.Config
	ReportsHandler *reports.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.Use(
		middleware.APIKey(cfg.APIKey),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/reports/:id" {
					return "POLLING"
				}
				return "DEFAULT"
			},
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 2, Burst: 10},
				"POLLING": {Rate: 10, Burst: 30},
			},
		}),
	)

	if deps.ReportsHandler != nil {
		deps.ReportsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
