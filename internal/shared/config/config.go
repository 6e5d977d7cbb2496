package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultUpstreamURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel         = "openai/gpt-oss-20b:free"
	DefaultFrontendURL   = "http://localhost:5173"
	DefaultRateWindow    = 15 * time.Minute
	DefaultRateMax       = 100
	DefaultBodyLimit     = 10 << 20
	defaultAppTitle      = "HireMind"
	defaultUpstreamRefer = "http://localhost:5000"
)

// builtinOrigins are always allowed in addition to FRONTEND_URL.
var builtinOrigins = []string{
	"https://hiremindcom.vercel.app",
	"http://localhost:5173",
	"http://localhost:5174",
}

// Config holds application configuration. It is read once at startup and
// passed by value; nothing reads the environment after Load returns.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	OpenRouterAPIKey string
	UpstreamURL      string
	Model            string
	UpstreamReferer  string
	AppTitle         string

	RateLimitWindow time.Duration
	RateLimitMax    int
	BodyLimitBytes  int64
}

// IsDev reports whether error details may be exposed to callers.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Existing
	// environment variables win.
	loadEnvFiles(".env", "backend/.env", "cmd/.env")

	env := normalizeEnv(firstNonEmpty(os.Getenv("ENV"), os.Getenv("NODE_ENV"), "production"))
	apiKey := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))

	return Config{
		Port:             getEnv("PORT", "5000"),
		Env:              env,
		CORSAllowOrigin:  allowedOrigins(getEnv("FRONTEND_URL", DefaultFrontendURL), os.Getenv("CORS_ALLOW_ORIGINS")),
		OpenRouterAPIKey: apiKey,
		UpstreamURL:      getEnv("OPENROUTER_BASE_URL", DefaultUpstreamURL),
		Model:            getEnv("OPENROUTER_MODEL", DefaultModel),
		UpstreamReferer:  getEnv("OPENROUTER_REFERER", defaultUpstreamRefer),
		AppTitle:         getEnv("OPENROUTER_APP_TITLE", defaultAppTitle),
		RateLimitWindow:  getDuration("RATE_LIMIT_WINDOW", DefaultRateWindow),
		RateLimitMax:     getInt("RATE_LIMIT_MAX", DefaultRateMax),
		BodyLimitBytes:   int64(getInt("BODY_LIMIT_BYTES", DefaultBodyLimit)),
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: skip %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config: %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config: %s invalid duration %q, using %s", key, raw, def)
		return def
	}
	return val
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// allowedOrigins merges the frontend URL, the builtin origins and any extra
// comma-separated origins, dropping duplicates while keeping order.
func allowedOrigins(frontend, extra string) []string {
	all := append([]string{frontend}, builtinOrigins...)
	all = append(all, splitAndTrim(extra)...)
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, o := range all {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dev", "development":
		return "dev"
	case "staging":
		return "staging"
	case "test":
		return "test"
	default:
		return "production"
	}
}
