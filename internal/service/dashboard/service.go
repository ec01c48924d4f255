// Package dashboard computes the compliance overview for a requester.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/regaudit-backend/internal/auth"
	"github.com/heartmarshall/regaudit-backend/internal/config"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

var tracer = otel.Tracer("regaudit/service/dashboard")

type regulationRepo interface {
	Count(ctx context.Context) (int, error)
}

type aggregateRepo interface {
	CountByConformity(ctx context.Context, scope domain.AccessScope) ([]domain.ConformityCount, error)
	DomainCoverage(ctx context.Context, scope domain.AccessScope) ([]domain.DomainCoverage, error)
}

type auditRepo interface {
	ListDueBetween(ctx context.Context, scope domain.AccessScope, from, to time.Time) ([]domain.AuditListItem, error)
}

type txManager interface {
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service computes dashboard statistics.
type Service struct {
	regulations regulationRepo
	aggregates  aggregateRepo
	audits      auditRepo
	tx          txManager
	cfg         config.DashboardConfig
	now         func() time.Time
	log         *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(
	log *slog.Logger,
	regulations regulationRepo,
	aggregates aggregateRepo,
	audits auditRepo,
	tx txManager,
	cfg config.DashboardConfig,
) *Service {
	return &Service{
		regulations: regulations,
		aggregates:  aggregates,
		audits:      audits,
		tx:          tx,
		cfg:         cfg,
		now:         time.Now,
		log:         log.With("service", "dashboard"),
	}
}

// ComputeStats returns the requester's dashboard. All queries share one
// read-only snapshot. top caps the domain breakdown; zero falls back to the
// configured cap, and a zero cap keeps every domain.
func (s *Service) ComputeStats(ctx context.Context, top int) (stats domain.DashboardStats, err error) {
	req, ok := auth.RequesterFromCtx(ctx)
	if !ok {
		return domain.DashboardStats{}, domain.ErrUnauthorized
	}
	if top < 0 {
		return domain.DashboardStats{}, domain.NewValidationError("top", "must be >= 0")
	}

	scope := domain.ResolveScope(req)
	window := domain.NewDeadlineWindow(s.now(), s.location(), s.cfg.DeadlineWindowDays)

	ctx, span := tracer.Start(ctx, "dashboard.ComputeStats", trace.WithAttributes(
		attribute.String("scope", scope.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var (
		total    int
		buckets  []domain.ConformityCount
		coverage []domain.DomainCoverage
		due      []domain.AuditListItem
	)

	err = s.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if total, err = s.regulations.Count(ctx); err != nil {
			return fmt.Errorf("count regulations: %w", err)
		}
		if buckets, err = s.aggregates.CountByConformity(ctx, scope); err != nil {
			return fmt.Errorf("count by conformity: %w", err)
		}
		if coverage, err = s.aggregates.DomainCoverage(ctx, scope); err != nil {
			return fmt.Errorf("domain coverage: %w", err)
		}
		if due, err = s.audits.ListDueBetween(ctx, scope, window.From, window.To); err != nil {
			return fmt.Errorf("upcoming deadlines: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("compute stats: %w", err)
	}

	audited := 0
	for _, b := range buckets {
		audited += b.Count
	}

	if top == 0 {
		top = s.cfg.TopDomains
	}
	if top > 0 && len(coverage) > top {
		coverage = coverage[:top]
	}
	if coverage == nil {
		coverage = []domain.DomainCoverage{}
	}
	if due == nil {
		due = []domain.AuditListItem{}
	}

	conformity := make([]domain.ConformityCount, 0, len(buckets)+1)
	conformity = append(conformity, buckets...)
	conformity = append(conformity, domain.ConformityCount{
		Status: domain.ConformityPending,
		Count:  domain.PendingCount(audited, total),
	})

	s.log.DebugContext(ctx, "stats computed",
		slog.String("scope", scope.String()),
		slog.Int("regulations", total),
		slog.Int("audited", audited),
		slog.Int("due", len(due)),
	)

	return domain.DashboardStats{
		Totals: domain.StatsTotals{
			RegulationCount: total,
			AuditedCount:    audited,
			AuditRate:       domain.AuditRate(audited, total),
		},
		Conformity:        conformity,
		Domains:           coverage,
		UpcomingDeadlines: due,
	}, nil
}

func (s *Service) location() *time.Location {
	if s.cfg.Location != nil {
		return s.cfg.Location
	}
	return time.UTC
}
