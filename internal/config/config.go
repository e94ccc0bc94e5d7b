// Package config provides configuration management for the pipeline console.
// Values are loaded from environment variables with sensible defaults and
// validated before the application starts.
//
// Environment Variables:
//
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - LOG_FILE: Log file path (default: stdout)
//   - DATABASE_PATH: SQLite database file path (default: ./pipeline_console.db)
//   - JWT_SECRET: Secret for API token signing (required, minimum 32 characters)
//   - REDIS_ADDRESS: Redis server address for the catalog cache (optional)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//   - CATALOG_CACHE_TTL: Catalog snapshot TTL (default: 30s)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for the console. Load it with
// Load() and check it with Validate() before use.
type Config struct {
	Port         string // Server port number
	DatabasePath string // Path to SQLite database file
	LogLevel     string // Logging level (debug, info, warn, error)

	JWTSecret string // Secret key for API token signing (required)

	// Redis configuration for the catalog cache. The cache is optional:
	// an empty address disables it.
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	CatalogCacheTTL time.Duration // How long catalog snapshots stay fresh
}

// Load creates a Config with values from environment variables, falling
// back to defaults. It does not validate; call Validate on the result.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "./pipeline_console.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RedisAddress:    os.Getenv("REDIS_ADDRESS"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 30*time.Second),
	}
}

// Validate checks that the configuration is complete enough to start the
// application safely.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.JWTSecret))
	}
	if c.RedisDB < 0 || c.RedisDB > 15 {
		return fmt.Errorf("REDIS_DB must be between 0 and 15, got %d", c.RedisDB)
	}
	if c.CatalogCacheTTL <= 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must be positive, got %s", c.CatalogCacheTTL)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
