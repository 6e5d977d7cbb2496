package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/generate"
	"hiremind-backend/internal/services/health"
	"hiremind-backend/internal/shared/config"
	"hiremind-backend/internal/shared/metrics"
	"hiremind-backend/internal/shared/server/middleware"
	"hiremind-backend/internal/shared/server/respond"
)

const msgRouteNotFound = "Route not found"

// RouterDeps contains handler dependencies for the HTTP router.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	GenerateHandler *generate.Handler
	// RateLimiter is shared across requests; nil builds a fresh one.
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if gin.Mode() != gin.TestMode {
		if cfg.IsDev() {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
	}
	r := gin.New()
	// Clients are keyed by the socket address; forwarded headers are not trusted.
	_ = r.SetTrustedProxies(nil)

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(cfg.IsDev()),
		middleware.SecurityHeaders(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Window:  cfg.RateLimitWindow,
			Max:     cfg.RateLimitMax,
			Limiter: deps.RateLimiter,
		}),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.BodyLimit(cfg.BodyLimitBytes),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(cfg.AppTitle)
	}
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.GenerateHandler != nil {
		deps.GenerateHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, msgRouteNotFound, "")
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
