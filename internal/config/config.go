// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Configuration errors.
var (
	ErrUnknownDriver   = errors.New("unknown storage driver")
	ErrMissingStoreURL = errors.New("storage connection URL is required")
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Account storage: "postgres" or "mongo"
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// Document store (MongoDB)
	MongoURL      string `env:"MONGO_URL"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"accountd"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Signup rate limiting (per client IP)
	RateLimitSignupEnabled bool `env:"RATE_LIMIT_SIGNUP_ENABLED" envDefault:"true"`
	RateLimitSignupRPS     int  `env:"RATE_LIMIT_SIGNUP_RPS" envDefault:"1"`
	RateLimitSignupBurst   int  `env:"RATE_LIMIT_SIGNUP_BURST" envDefault:"5"`

	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 64KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesMongo reports whether accounts are stored in MongoDB.
func (c *Config) UsesMongo() bool {
	return c.StorageDriver == DriverMongo
}

// StoreURL returns the connection URL of the active account store.
func (c *Config) StoreURL() string {
	if c.UsesMongo() {
		return c.MongoURL
	}
	return c.DatabaseURL
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.StorageDriver)
	}

	if c.StoreURL() == "" {
		return fmt.Errorf("%w for driver %q", ErrMissingStoreURL, c.StorageDriver)
	}

	return nil
}

// Load reads an optional .env file, parses environment variables and
// returns a validated Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
