package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/accountd/accountd/internal/config"
	"github.com/accountd/accountd/internal/handler"
	"github.com/accountd/accountd/internal/middleware"
)

type routes struct {
	root    *handler.Handler
	health  *handler.HealthHandler
	signup  *handler.SignupHandler
	metrics *handler.MetricsHandler
	limiter middleware.IPLimiter
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(rt routes, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(cfg.IsProduction()))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
			MaxAge:         300,
		}))
	}

	r.Get("/", rt.root.Hello)
	r.Get("/healthz", rt.health.Healthz)
	r.Get("/readyz", rt.health.Readyz)
	r.Get("/metrics", rt.metrics.Metrics)

	signup := r.With(
		middleware.MaxBodySize(cfg.MaxRequestBodySize),
		middleware.RateLimitIP(middleware.RateLimitConfig{
			Logger:  logger,
			Limiter: rt.limiter,
			Enabled: cfg.RateLimitSignupEnabled,
			RPS:     cfg.RateLimitSignupRPS,
			Burst:   cfg.RateLimitSignupBurst,
		}),
	)
	signup.Post("/signup", rt.signup.Signup)
	signup.Post("/api/signup", rt.signup.Signup)

	r.NotFound(rt.root.NotFound)
	r.MethodNotAllowed(rt.root.MethodNotAllowed)

	return r
}
