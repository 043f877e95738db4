package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/textshare/textshare/internal/metrics"
	"github.com/textshare/textshare/internal/middleware"
	"github.com/textshare/textshare/internal/service"
)

// DefaultMaxBodyBytes caps request bodies when RouterConfig leaves it unset.
const DefaultMaxBodyBytes int64 = 1 << 20

// RouterConfig collects everything the HTTP surface depends on.
type RouterConfig struct {
	Auth     *service.AuthService
	Pastes   *service.PasteService
	Verifier middleware.TokenVerifier
	Metrics  metrics.Snapshotter

	// DB and Cache back /readyz. Cache may be nil.
	DB    HealthChecker
	Cache HealthChecker

	AllowedOrigins []string
	MaxBodyBytes   int64
	IsDevelopment  bool
	Logger         *slog.Logger
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	h := New()
	healthHandler := NewHealthHandler(cfg.DB, cfg.Cache)
	metricsHandler := NewMetricsHandler(cfg.Metrics)
	authHandler := NewAuthHandler(cfg.Auth, cfg.Logger)
	pasteHandler := NewPasteHandler(cfg.Pastes, cfg.Logger)

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger, cfg.IsDevelopment))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(middleware.FrontendCORSConfig(cfg.AllowedOrigins...)))
	r.Use(middleware.MaxBodySize(maxBody))

	// Operational endpoints
	r.Get("/", h.Hello)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.Verifier, cfg.Logger))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/pastes", func(r chi.Router) {
			r.Post("/", pasteHandler.Create)
			r.Get("/{uuid}", pasteHandler.Get)
			r.With(middleware.RequireIdentity).Get("/", pasteHandler.List)
			r.With(middleware.RequireIdentity).Delete("/{uuid}", pasteHandler.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
