// Package report renders the scoped audit list as CSV exports and JSON
// compliance reports.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
	"github.com/heartmarshall/regaudit-backend/internal/service/audit"
)

type auditLister interface {
	ListAll(ctx context.Context, input audit.ListInput) ([]domain.AuditListItem, error)
}

type statsComputer interface {
	ComputeStats(ctx context.Context, top int) (domain.DashboardStats, error)
}

// Report is a point-in-time snapshot of the requester's compliance state.
type Report struct {
	GeneratedAt time.Time
	Filters     audit.ListInput
	Stats       domain.DashboardStats
	Items       []domain.AuditListItem
}

// Service builds exports and reports.
type Service struct {
	audits auditLister
	stats  statsComputer
	now    func() time.Time
	log    *slog.Logger
}

// NewService creates a new report service.
func NewService(log *slog.Logger, audits auditLister, stats statsComputer) *Service {
	return &Service{
		audits: audits,
		stats:  stats,
		now:    time.Now,
		log:    log.With("service", "report"),
	}
}

// Build assembles a report for the filter.
func (s *Service) Build(ctx context.Context, filter audit.ListInput) (Report, error) {
	items, err := s.audits.ListAll(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("report items: %w", err)
	}
	stats, err := s.stats.ComputeStats(ctx, 0)
	if err != nil {
		return Report{}, fmt.Errorf("report stats: %w", err)
	}

	return Report{
		GeneratedAt: s.now().UTC(),
		Filters:     filter,
		Stats:       stats,
		Items:       items,
	}, nil
}

var csvHeader = []string{
	"regulation_id", "domain", "chapter", "sub_chapter", "title",
	"conformity", "priority", "feasibility", "action_plan", "deadline",
	"owner", "editor", "updated_at",
}

// WriteCSV writes the filtered audit list to w. Nothing is written when the
// list cannot be loaded.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, filter audit.ListInput) (int, error) {
	items, err := s.audits.ListAll(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("export items: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, it := range items {
		if err := cw.Write(csvRecord(it)); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}

	s.log.InfoContext(ctx, "audits exported", slog.Int("rows", len(items)))
	return len(items), nil
}

func csvRecord(it domain.AuditListItem) []string {
	var editor string
	if it.Editor != nil {
		editor = it.Editor.Email
	}
	var deadline string
	if it.Deadline != nil {
		deadline = domain.FormatDate(*it.Deadline)
	}

	return []string{
		strconv.FormatInt(it.RegulationID, 10),
		it.Regulation.Domain,
		it.Regulation.Chapter,
		it.Regulation.SubChapter,
		it.Regulation.Title,
		it.Status().String(),
		deref(it.Priority),
		deref(it.Feasibility),
		it.ActionPlan,
		deadline,
		deref(it.Owner),
		editor,
		it.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func deref[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}
