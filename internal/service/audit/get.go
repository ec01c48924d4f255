package audit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// Get returns the audit of a regulation if it is visible to the requester.
// Missing and out-of-scope records both yield domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, regulationID int64) (domain.AuditListItem, error) {
	req, err := requester(ctx)
	if err != nil {
		return domain.AuditListItem{}, err
	}
	if regulationID <= 0 {
		return domain.AuditListItem{}, domain.NewValidationError("regulation_id", "required")
	}

	ctx, span := tracer.Start(ctx, "audit.Get", trace.WithAttributes(attribute.Int64("regulation.id", regulationID)))
	defer func() { endSpan(span, err) }()

	item, err := s.audits.GetByRegulation(ctx, domain.ResolveScope(req), regulationID)
	if err != nil {
		return domain.AuditListItem{}, fmt.Errorf("get audit: %w", err)
	}
	return item, nil
}
