package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envProduction = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	HTTPAddr      string
	DBDSN         string
	MigrationsDir string
	RedisAddr     string // empty disables the slot-grid cache
	SlotCacheTTL  time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origins (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == envProduction

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Goose migrations directory (default: migrations)
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")

	// Redis address for the slot-grid cache; leaving it unset disables caching.
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")

	// Slot-grid cache TTL, parsed as time.Duration (e.g. "30s", "5m").
	ttlStr := getEnv("SLOT_CACHE_TTL", "1m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_CACHE_TTL: %w", err)
	}
	cfg.SlotCacheTTL = ttl

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}
