// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers selected by the DATABASE_URL scheme.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const sqliteScheme = "sqlite://"

// minSecretLength is the shortest JWT_SECRET accepted outside development.
const minSecretLength = 32

// ErrUnsupportedDatabaseURL is returned for DATABASE_URL schemes no store handles.
var ErrUnsupportedDatabaseURL = errors.New("unsupported DATABASE_URL scheme")

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"5000"`

	// Database: postgres://... or sqlite://path
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	DatabaseTimeout time.Duration `env:"DATABASE_TIMEOUT" envDefault:"5s"`

	// Cache (Redis); empty disables the paste cache
	RedisURL      string        `env:"REDIS_URL"`
	PasteCacheTTL time.Duration `env:"PASTE_CACHE_TTL" envDefault:"1h"`

	// Sessions
	JWTSecret string        `env:"JWT_SECRET,required,unset"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// Browser frontend origin(s), comma-separated
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// AllowedOrigins parses FRONTEND_URL into a list of CORS origins.
func (c *Config) AllowedOrigins() []string {
	if c.FrontendURL == "" {
		return nil
	}

	origins := strings.Split(c.FrontendURL, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Database returns the store driver and the DSN to hand it.
// sqlite://path yields the bare path; postgres URLs pass through unchanged.
func (c *Config) Database() (driver, dsn string, err error) {
	lower := strings.ToLower(c.DatabaseURL)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres, c.DatabaseURL, nil
	case strings.HasPrefix(lower, sqliteScheme):
		path := c.DatabaseURL[len(sqliteScheme):]
		if path == "" {
			return "", "", fmt.Errorf("%w: sqlite:// needs a path or :memory:", ErrUnsupportedDatabaseURL)
		}
		return DriverSQLite, path, nil
	default:
		return "", "", ErrUnsupportedDatabaseURL
	}
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	if _, _, err := c.Database(); err != nil {
		return err
	}
	if !c.IsDevelopment() && len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes outside development", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.MaxRequestBodySize <= 0 {
		return errors.New("MAX_REQUEST_BODY_SIZE must be positive")
	}
	return nil
}

// Load parses environment variables and returns a validated Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
