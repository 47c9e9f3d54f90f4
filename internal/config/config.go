package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// UpstreamBaseURL is the root of the course administration API that
	// serves /courses and /student-course.
	UpstreamBaseURL     string
	UpstreamAccessToken string
	UpstreamTimeout     time.Duration

	// RedisURL points at the token store. Empty disables it.
	RedisURL string
	// TokenScope selects a deployment-specific access_token key.
	TokenScope string
	// JWTSecret enables local verification of forwarded bearer tokens.
	// Empty means tokens are passed upstream unverified.
	JWTSecret string

	RateLimitPerMinute int
	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "pretty"),
		UpstreamBaseURL:     strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "http://localhost:3000"), "/"),
		UpstreamAccessToken: getEnv("UPSTREAM_ACCESS_TOKEN", ""),
		UpstreamTimeout:     time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		RedisURL:            getEnv("REDIS_URL", ""),
		TokenScope:          getEnv("TOKEN_SCOPE", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
