package rest

import (
	"context"
	"io"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
	"github.com/heartmarshall/regaudit-backend/internal/service/audit"
	"github.com/heartmarshall/regaudit-backend/internal/service/report"
)

type fakeAuditService struct {
	SaveFunc     func(ctx context.Context, input audit.SaveInput) (domain.AuditRecord, error)
	GetFunc      func(ctx context.Context, regulationID int64) (domain.AuditListItem, error)
	ListFunc     func(ctx context.Context, input audit.ListInput) (audit.ListResult, error)
	BulkSaveFunc func(ctx context.Context, items []audit.BulkItem) (audit.BulkResult, error)
}

func (f *fakeAuditService) Save(ctx context.Context, input audit.SaveInput) (domain.AuditRecord, error) {
	return f.SaveFunc(ctx, input)
}

func (f *fakeAuditService) Get(ctx context.Context, regulationID int64) (domain.AuditListItem, error) {
	return f.GetFunc(ctx, regulationID)
}

func (f *fakeAuditService) List(ctx context.Context, input audit.ListInput) (audit.ListResult, error) {
	return f.ListFunc(ctx, input)
}

func (f *fakeAuditService) BulkSave(ctx context.Context, items []audit.BulkItem) (audit.BulkResult, error) {
	return f.BulkSaveFunc(ctx, items)
}

type fakeStatsService struct {
	ComputeStatsFunc func(ctx context.Context, top int) (domain.DashboardStats, error)
}

func (f *fakeStatsService) ComputeStats(ctx context.Context, top int) (domain.DashboardStats, error) {
	return f.ComputeStatsFunc(ctx, top)
}

type fakeReportService struct {
	BuildFunc    func(ctx context.Context, filter audit.ListInput) (report.Report, error)
	WriteCSVFunc func(ctx context.Context, w io.Writer, filter audit.ListInput) (int, error)
}

func (f *fakeReportService) Build(ctx context.Context, filter audit.ListInput) (report.Report, error) {
	return f.BuildFunc(ctx, filter)
}

func (f *fakeReportService) WriteCSV(ctx context.Context, w io.Writer, filter audit.ListInput) (int, error) {
	return f.WriteCSVFunc(ctx, w, filter)
}

type fakeRegulationService struct {
	CatalogFunc func(ctx context.Context, domainName string) ([]domain.CatalogRow, error)
	DomainsFunc func(ctx context.Context) ([]string, error)
}

func (f *fakeRegulationService) Catalog(ctx context.Context, domainName string) ([]domain.CatalogRow, error) {
	return f.CatalogFunc(ctx, domainName)
}

func (f *fakeRegulationService) Domains(ctx context.Context) ([]string, error) {
	return f.DomainsFunc(ctx)
}

type fakeValidator struct {
	tokens map[string]domain.Requester
}

func (f *fakeValidator) ValidateToken(_ context.Context, token string) (domain.Requester, error) {
	r, ok := f.tokens[token]
	if !ok {
		return domain.Requester{}, domain.ErrUnauthorized
	}
	return r, nil
}
