package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/practice-labs/loginsvc/internal/middleware"
	"github.com/practice-labs/loginsvc/internal/middleware/metrics"
	"github.com/practice-labs/loginsvc/internal/middleware/ratelimit"
	"github.com/practice-labs/loginsvc/internal/setup"
)

// New builds the HTTP routing tree. The login endpoint gets its own
// per-IP rate limiter; everything else shares the common middleware stack.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	cfg := deps.Config.Public

	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(cfg.SecureCookies))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := ratelimit.New(cfg.LoginRatePerSecond, cfg.LoginBurst, 1*time.Hour)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(mw.RateLimit(loginLimiter, mw.GetIP)).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/verify", h.Verify)
		})

		r.With(authMw.NeedAuth()).Get("/me", h.Me)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMw.AdminOnly())
			r.Get("/ping", h.AdminPing)
		})
	})

	return r
}
