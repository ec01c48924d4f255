package audit

import (
	"context"
	"fmt"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// ListResult is one page of audits plus pagination metadata.
type ListResult struct {
	Items []domain.AuditListItem
	Total int
	Page  int
	Limit int
	Pages int
}

// List returns the requester's scoped audits, most recently updated first.
func (s *Service) List(ctx context.Context, input ListInput) (ListResult, error) {
	req, err := requester(ctx)
	if err != nil {
		return ListResult{}, err
	}
	if err := input.Validate(); err != nil {
		return ListResult{}, err
	}

	ctx, span := tracer.Start(ctx, "audit.List")
	defer func() { endSpan(span, err) }()

	page := input.page(s.cfg.DefaultPageLimit, s.cfg.MaxPageLimit)

	items, total, err := s.audits.List(ctx, domain.ResolveScope(req), input.Filter(), page)
	if err != nil {
		return ListResult{}, fmt.Errorf("list audits: %w", err)
	}

	return ListResult{
		Items: items,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: domain.PageCount(total, page.Limit),
	}, nil
}

// ListAll returns every scoped audit matching the filter of input, ignoring
// pagination. Exports and reports are built from it.
func (s *Service) ListAll(ctx context.Context, input ListInput) ([]domain.AuditListItem, error) {
	req, err := requester(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	items, err := s.audits.ListAll(ctx, domain.ResolveScope(req), input.Filter())
	if err != nil {
		return nil, fmt.Errorf("list all audits: %w", err)
	}
	return items, nil
}
