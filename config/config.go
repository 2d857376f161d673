package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all process configuration. It is loaded once in main and
// passed to module constructors; modules never read the environment directly.
type Config struct {
	// Server
	Port               int
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration

	// Storage
	DatabasePath string

	// JWT
	JWTSecretKey   string
	JWTIssuer      string
	AccessTokenTTL time.Duration
}

// Load reads configuration from environment variables, falling back to
// development defaults. In production JWT_SECRET_KEY must be set.
func Load() *Config {
	return &Config{
		Port:               envInt("PORT", 3000),
		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeout:    time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
		DatabasePath:       envString("DATABASE_PATH", "todo.db"),
		JWTSecretKey:       envString("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
		JWTIssuer:          envString("JWT_ISSUER", "todo-backend"),
		AccessTokenTTL:     time.Duration(envInt("JWT_ACCESS_TOKEN_TTL_MINUTES", 30)) * time.Minute,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
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
