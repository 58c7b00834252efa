package config

import (
	"os"
	"strconv"
	"strings"

	"turbine-repair/internal/shared/telemetry"
)

const defaultMaxBodyBytes int64 = 1 << 20

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	CORSAllowOrigin    []string
	FunctionKeys       []string
	AllowQueryOverride bool
	MaxBodyBytes       int64
	DatabaseURL        string
	HistoryBackend     string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	keys := splitAndTrim(os.Getenv("FUNCTION_KEYS"))
	if env == "production" && len(keys) == 0 {
		telemetry.Warn("config.function_keys_empty", map[string]any{"env": env})
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		FunctionKeys:       keys,
		AllowQueryOverride: getBool("ALLOW_QUERY_OVERRIDE", true),
		MaxBodyBytes:       getInt64("MAX_BODY_BYTES", defaultMaxBodyBytes),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		HistoryBackend:     normalizeHistoryBackend(os.Getenv("HISTORY_BACKEND")),
		RateLimitRPS:       getFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:     int(getInt64("RATE_LIMIT_BURST", 20)),
	}
}

// IsDevLike reports whether env allows relaxed local defaults.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		telemetry.Warn("config.invalid_bool", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
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
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeHistoryBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memory":
		return "memory"
	default:
		return ""
	}
}
