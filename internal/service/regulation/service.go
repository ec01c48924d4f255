// Package regulation serves the read-only regulation catalog merged with the
// requester's audits.
package regulation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/regaudit-backend/internal/auth"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

type regulationRepo interface {
	Domains(ctx context.Context) ([]string, error)
	Catalog(ctx context.Context, scope domain.AccessScope, domainName *string) ([]domain.CatalogRow, error)
}

// Service provides catalog queries.
type Service struct {
	regulations regulationRepo
	log         *slog.Logger
}

// NewService creates a new regulation service.
func NewService(log *slog.Logger, regulations regulationRepo) *Service {
	return &Service{
		regulations: regulations,
		log:         log.With("service", "regulation"),
	}
}

// Catalog returns every regulation, optionally restricted to one domain,
// with the audit visible to the requester attached. Audits outside the
// requester's scope are left out, so their regulations read as pending.
func (s *Service) Catalog(ctx context.Context, domainName string) ([]domain.CatalogRow, error) {
	req, ok := auth.RequesterFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var filter *string
	if d := strings.TrimSpace(domainName); d != "" {
		filter = &d
	}

	rows, err := s.regulations.Catalog(ctx, domain.ResolveScope(req), filter)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return rows, nil
}

// Domains returns the distinct catalog domains in name order.
func (s *Service) Domains(ctx context.Context) ([]string, error) {
	if _, ok := auth.RequesterFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	domains, err := s.regulations.Domains(ctx)
	if err != nil {
		return nil, fmt.Errorf("domains: %w", err)
	}
	return domains, nil
}
