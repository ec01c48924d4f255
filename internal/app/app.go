package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/regaudit-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/regaudit-backend/internal/adapter/postgres/audit"
	dashboardrepo "github.com/heartmarshall/regaudit-backend/internal/adapter/postgres/dashboard"
	regulationrepo "github.com/heartmarshall/regaudit-backend/internal/adapter/postgres/regulation"
	"github.com/heartmarshall/regaudit-backend/internal/auth"
	"github.com/heartmarshall/regaudit-backend/internal/config"
	"github.com/heartmarshall/regaudit-backend/internal/service/audit"
	"github.com/heartmarshall/regaudit-backend/internal/service/dashboard"
	"github.com/heartmarshall/regaudit-backend/internal/service/regulation"
	"github.com/heartmarshall/regaudit-backend/internal/service/report"
	"github.com/heartmarshall/regaudit-backend/internal/transport/middleware"
	"github.com/heartmarshall/regaudit-backend/internal/transport/rest"
)

const rateLimitCleanup = time.Minute

// Run connects to the database, wires repositories, services and the HTTP
// router, and serves until ctx is cancelled. In-flight requests get
// cfg.Server.ShutdownTimeout to finish.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("timezone", cfg.Dashboard.Timezone),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, stop := newHandler(logger, pool, cfg, registry)
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newHandler builds the full HTTP handler on top of db. The returned stop
// function releases background resources.
func newHandler(
	logger *slog.Logger,
	db interface {
		postgres.DB
		Ping(ctx context.Context) error
	},
	cfg *config.Config,
	registry *prometheus.Registry,
) (http.Handler, func()) {
	audits := auditrepo.New(db)
	regulations := regulationrepo.New(db)
	aggregates := dashboardrepo.New(db)
	txm := postgres.NewTxManager(db)

	auditSvc := audit.NewService(logger, audits, cfg.Audit, audit.NewMetrics(registry))
	dashboardSvc := dashboard.NewService(logger, regulations, aggregates, audits, txm, cfg.Dashboard)
	regulationSvc := regulation.NewService(logger, regulations)
	reportSvc := report.NewService(logger, auditSvc, dashboardSvc)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, rateLimitCleanup)
	}

	router := rest.NewRouter(rest.RouterDeps{
		Log:         logger,
		Validator:   jwtManager,
		CORS:        cfg.CORS,
		RateLimiter: limiter,
		Metrics:     middleware.NewHTTPMetrics(registry),
		MetricsHTTP: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Health:      rest.NewHealthHandler(db, Version),
		Audits:      rest.NewAuditHandler(auditSvc, logger),
		Dashboard:   rest.NewDashboardHandler(dashboardSvc, auditSvc, reportSvc, logger),
		Regulations: rest.NewRegulationHandler(regulationSvc, logger),
	})

	stop := func() {
		if limiter != nil {
			limiter.Stop()
		}
	}
	return router, stop
}
