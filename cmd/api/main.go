// Package main is the entrypoint for the textshare API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/textshare/textshare/internal/auth"
	"github.com/textshare/textshare/internal/cache"
	"github.com/textshare/textshare/internal/config"
	"github.com/textshare/textshare/internal/handler"
	"github.com/textshare/textshare/internal/metrics"
	"github.com/textshare/textshare/internal/repository"
	"github.com/textshare/textshare/internal/repository/sqlite"
	"github.com/textshare/textshare/internal/server"
	"github.com/textshare/textshare/internal/service"
)

// store is what the services and readiness probe need from either backend.
type store interface {
	service.UserStore
	service.PasteStore
	handler.HealthChecker
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Initialize cache. A nil *cache.Cache must not reach the services as a
	// non-nil interface, so both are assigned only when Redis is configured.
	var (
		pasteCache service.PasteCache
		cacheCheck handler.HealthChecker
		closeCache func(context.Context) error
	)
	if cfg.CacheEnabled() {
		cacheClient, err := cache.New(ctx, cfg.RedisURL, cfg.PasteCacheTTL)
		if err != nil {
			_ = closeStore(ctx)
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return fmt.Errorf("connect to Redis: %s", sanitizeError(err, cfg.RedisURL))
		}
		pasteCache = cacheClient
		cacheCheck = cacheClient
		closeCache = func(context.Context) error { return cacheClient.Close() }
		logger.Info("connected to Redis", slog.Duration("ttl", cfg.PasteCacheTTL))
	} else {
		logger.Info("paste cache disabled")
	}

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewHasher(auth.DefaultParams)
	authService := service.NewAuthService(st, hasher, issuer, metricsRecorder, logger)
	pasteService := service.NewPasteService(st, pasteCache, metricsRecorder, logger)

	// Setup router
	r := handler.NewRouter(handler.RouterConfig{
		Auth:           authService,
		Pastes:         pasteService,
		Verifier:       issuer,
		Metrics:        metricsRecorder,
		DB:             st,
		Cache:          cacheCheck,
		AllowedOrigins: cfg.AllowedOrigins(),
		MaxBodyBytes:   cfg.MaxRequestBodySize,
		IsDevelopment:  cfg.IsDevelopment(),
		Logger:         logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("database", closeStore)
	if closeCache != nil {
		srv.OnShutdown("cache", closeCache)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"frontend_url", cfg.FrontendURL,
	)

	return srv.Run(ctx)
}

// openStore connects the backend selected by DATABASE_URL and applies
// migrations. The returned func closes it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store, func(context.Context) error, error) {
	driver, dsn, err := cfg.Database()
	if err != nil {
		return nil, nil, err
	}

	switch driver {
	case config.DriverSQLite:
		st, err := sqlite.New(ctx, dsn, cfg.DatabaseTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("opened sqlite store", slog.String("path", dsn))
		return st, func(context.Context) error { return st.Close() }, nil

	default:
		repo, err := repository.New(ctx, dsn, cfg.DatabaseTimeout)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, dsn)),
				slog.String("database_url", redactURL(dsn)),
			)
			return nil, nil, fmt.Errorf("connect to database: %s", sanitizeError(err, dsn))
		}
		applied, err := repo.Migrate(ctx)
		if err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("migrate database: %s", sanitizeError(err, dsn))
		}
		logger.Info("connected to database", slog.Int("migrations_applied", applied))
		return repo, func(context.Context) error { repo.Close(); return nil }, nil
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
