// Package audit implements the audit record store operations and the
// batch-save coordinator on top of the scoped repository.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/regaudit-backend/internal/auth"
	"github.com/heartmarshall/regaudit-backend/internal/config"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

var tracer = otel.Tracer("regaudit/service/audit")

type auditRepo interface {
	Upsert(ctx context.Context, regulationID int64, fields domain.AuditFields, editor uuid.UUID) (domain.AuditRecord, domain.SaveOutcome, error)
	GetByRegulation(ctx context.Context, scope domain.AccessScope, regulationID int64) (domain.AuditListItem, error)
	List(ctx context.Context, scope domain.AccessScope, filter domain.AuditFilter, page domain.Page) ([]domain.AuditListItem, int, error)
	ListAll(ctx context.Context, scope domain.AccessScope, filter domain.AuditFilter) ([]domain.AuditListItem, error)
}

// Service provides audit record operations for the requester in context.
type Service struct {
	audits  auditRepo
	cfg     config.AuditConfig
	metrics *Metrics
	log     *slog.Logger
}

// NewService creates a new audit service. metrics may be nil.
func NewService(
	log *slog.Logger,
	audits auditRepo,
	cfg config.AuditConfig,
	metrics *Metrics,
) *Service {
	return &Service{
		audits:  audits,
		cfg:     cfg,
		metrics: metrics,
		log:     log.With("service", "audit"),
	}
}

// requester returns the identity of the caller or domain.ErrUnauthorized.
func requester(ctx context.Context) (domain.Requester, error) {
	r, ok := auth.RequesterFromCtx(ctx)
	if !ok {
		return domain.Requester{}, domain.ErrUnauthorized
	}
	return r, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func since(start time.Time) float64 {
	return time.Since(start).Seconds()
}
