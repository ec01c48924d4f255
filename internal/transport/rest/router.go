package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/regaudit-backend/internal/config"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
	"github.com/heartmarshall/regaudit-backend/internal/transport/middleware"
)

// TokenValidator resolves a bearer token into a requester.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (domain.Requester, error)
}

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Log         *slog.Logger
	Validator   TokenValidator
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter // optional
	Metrics     *middleware.HTTPMetrics // optional
	MetricsHTTP http.Handler            // optional, served at /metrics

	Health      *HealthHandler
	Audits      *AuditHandler
	Dashboard   *DashboardHandler
	Regulations *RegulationHandler
}

// NewRouter builds the chi router. Probes and /metrics are public; every
// other route requires a bearer token.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.CORS(d.CORS))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	if d.MetricsHTTP != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHTTP)
	}

	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware())
		}
		r.Use(middleware.Auth(d.Validator))
		r.Use(middleware.RequireAuth)

		r.Route("/audit", func(r chi.Router) {
			r.Post("/", d.Audits.Save)
			r.Get("/mine", d.Audits.Mine)
			r.Get("/{regulationId}", d.Audits.Get)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", d.Dashboard.Stats)
			r.Post("/bulk-save", d.Dashboard.BulkSave)
			r.Get("/export", d.Dashboard.Export)
			r.Get("/report", d.Dashboard.Report)
		})

		r.Route("/regulations", func(r chi.Router) {
			r.Get("/", d.Regulations.Catalog)
			r.Get("/domains", d.Regulations.Domains)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
