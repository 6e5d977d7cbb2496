package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hiremind-backend/internal/generate"
	"hiremind-backend/internal/llm"
	"hiremind-backend/internal/llm/openrouter"
	"hiremind-backend/internal/services/health"
	"hiremind-backend/internal/shared/config"
	"hiremind-backend/internal/shared/server"
	"hiremind-backend/internal/shared/server/middleware"
	"hiremind-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	LLM             llm.Client
	GenerateService *generate.Service
	GenerateHandler *generate.Handler
	Health          *health.Service
	RateLimiter     *middleware.RateLimiter
}

// Build wires the relay service and router from cfg.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "production"
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = config.DefaultModel
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:      cfg,
		LLM:         llmClient,
		Health:      health.NewService(cfg.AppTitle),
		RateLimiter: middleware.NewRateLimiter(nil),
	}
	app.GenerateService = generate.NewService(llmClient, cfg.Model)
	app.GenerateHandler = generate.NewHandler(app.GenerateService, cfg.IsDev())

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Health:          app.Health,
		GenerateHandler: app.GenerateHandler,
		RateLimiter:     app.RateLimiter,
	})
	return app, nil
}

// buildLLM returns a nil client when no key is set so the service still
// starts and answers with a configuration error.
func buildLLM(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.OpenRouterAPIKey) == "" {
		telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{
			"model":  cfg.Model,
			"detail": "/api/generate will answer 500 until OPENROUTER_API_KEY is configured",
		})
		return nil, nil
	}
	return openrouter.NewClient(openrouter.Options{
		APIKey:  cfg.OpenRouterAPIKey,
		URL:     cfg.UpstreamURL,
		Referer: cfg.UpstreamReferer,
		Title:   cfg.AppTitle,
	})
}
