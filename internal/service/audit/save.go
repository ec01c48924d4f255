package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// Save creates or fully replaces the audit of input.RegulationID and makes
// the requester its editor. The previous editor is not checked: saves are
// last-writer-wins and a reassignment is only logged.
func (s *Service) Save(ctx context.Context, input SaveInput) (domain.AuditRecord, error) {
	req, err := requester(ctx)
	if err != nil {
		return domain.AuditRecord{}, err
	}

	ctx, span := tracer.Start(ctx, "audit.Save", trace.WithAttributes(
		attribute.Int64("regulation.id", input.RegulationID),
		attribute.String("user.id", req.ID.String()),
	))
	defer func() { endSpan(span, err) }()

	if err = input.Validate(); err != nil {
		return domain.AuditRecord{}, err
	}

	rec, err := s.save(ctx, req, input)
	return rec, err
}

// save upserts a validated input on behalf of req.
func (s *Service) save(ctx context.Context, req domain.Requester, input SaveInput) (domain.AuditRecord, error) {
	start := time.Now()

	rec, outcome, err := s.audits.Upsert(ctx, input.RegulationID, input.fields(), req.ID)
	if err != nil {
		s.metrics.observeSave("failed", since(start))
		return domain.AuditRecord{}, fmt.Errorf("upsert audit: %w", err)
	}

	result := "updated"
	if outcome.Created {
		result = "created"
	}
	s.metrics.observeSave(result, since(start))

	if outcome.EditorChanged(req.ID) {
		s.log.InfoContext(ctx, "audit editor reassigned",
			slog.Int64("regulation_id", rec.RegulationID),
			slog.String("previous_editor", outcome.PreviousEditor.String()),
			slog.String("editor", req.ID.String()),
		)
	}

	s.log.InfoContext(ctx, "audit saved",
		slog.String("user_id", req.ID.String()),
		slog.Int64("regulation_id", rec.RegulationID),
		slog.String("audit_id", rec.ID.String()),
		slog.String("result", result),
		slog.String("status", rec.Status().String()),
	)

	return rec, nil
}
