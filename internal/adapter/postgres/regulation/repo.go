// Package regulation reads the regulation catalog, optionally merged with
// the audits visible to a requester.
package regulation

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/regaudit-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// Repo provides read access to the regulations table.
type Repo struct {
	db postgres.DB
}

// New creates a new regulation repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Count returns the number of regulations in the catalog.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := postgres.Builder().Select("count(*)").From("regulations").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count regulations: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count regulations: %w", err)
	}
	return n, nil
}

// Domains returns the distinct catalog domains in name order.
func (r *Repo) Domains(ctx context.Context) ([]string, error) {
	query, args, err := postgres.Builder().
		Select("DISTINCT domain").
		From("regulations").
		OrderBy("domain").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list domains: %w", err)
	}

	var domains []string
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &domains, query, args...); err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	if domains == nil {
		domains = []string{}
	}
	return domains, nil
}

// Catalog returns every regulation (optionally of one domain) with the
// audit visible under scope. Regulations whose audit is missing or out of
// scope come back with a nil Audit, so hidden records read as pending.
func (r *Repo) Catalog(ctx context.Context, scope domain.AccessScope, domainName *string) ([]domain.CatalogRow, error) {
	scopeSQL, scopeArgs, err := postgres.ScopePredicate(scope, "a.editing_user_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build scope: %w", err)
	}

	b := postgres.Builder().
		Select(
			"r.id", "r.domain", "r.chapter", "r.sub_chapter", "r.title", "r.requirement",
			"r.legal_references", "r.required_documents", "r.created_at",
			"a.id AS audit_id", "a.conformity", "a.priority", "a.feasibility", "a.action_plan",
			"a.deadline", "a.owner", "a.editing_user_id", "a.created_at AS audit_created_at",
			"a.updated_at AS audit_updated_at",
		).
		From("regulations r").
		LeftJoin("audits a ON a.regulation_id = r.id AND "+scopeSQL, scopeArgs...).
		OrderBy("r.domain", "r.chapter", "r.sub_chapter", "r.id")
	if domainName != nil {
		b = b.Where(sq.Eq{"r.domain": *domainName})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	var rows []catalogRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	out := make([]domain.CatalogRow, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

type catalogRow struct {
	ID                int64      `db:"id"`
	Domain            string     `db:"domain"`
	Chapter           string     `db:"chapter"`
	SubChapter        string     `db:"sub_chapter"`
	Title             string     `db:"title"`
	Requirement       string     `db:"requirement"`
	LegalReferences   string     `db:"legal_references"`
	RequiredDocuments string     `db:"required_documents"`
	CreatedAt         time.Time  `db:"created_at"`
	AuditID           *uuid.UUID `db:"audit_id"`
	Conformity        *string    `db:"conformity"`
	Priority          *string    `db:"priority"`
	Feasibility       *string    `db:"feasibility"`
	ActionPlan        *string    `db:"action_plan"`
	Deadline          *time.Time `db:"deadline"`
	Owner             *string    `db:"owner"`
	EditingUserID     *uuid.UUID `db:"editing_user_id"`
	AuditCreatedAt    *time.Time `db:"audit_created_at"`
	AuditUpdatedAt    *time.Time `db:"audit_updated_at"`
}

func (r catalogRow) toDomain() domain.CatalogRow {
	row := domain.CatalogRow{
		Regulation: domain.Regulation{
			ID:                r.ID,
			Domain:            r.Domain,
			Chapter:           r.Chapter,
			SubChapter:        r.SubChapter,
			Title:             r.Title,
			Requirement:       r.Requirement,
			LegalReferences:   r.LegalReferences,
			RequiredDocuments: r.RequiredDocuments,
			CreatedAt:         r.CreatedAt,
		},
	}
	if r.AuditID == nil {
		return row
	}

	rec := &domain.AuditRecord{
		ID:            *r.AuditID,
		RegulationID:  r.ID,
		EditingUserID: r.EditingUserID,
		AuditFields:   domain.AuditFields{Owner: r.Owner},
	}
	if r.ActionPlan != nil {
		rec.ActionPlan = *r.ActionPlan
	}
	if r.Conformity != nil {
		c := domain.Conformity(*r.Conformity)
		rec.Conformity = &c
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		rec.Priority = &p
	}
	if r.Feasibility != nil {
		f := domain.Feasibility(*r.Feasibility)
		rec.Feasibility = &f
	}
	if r.Deadline != nil {
		d := domain.DateOf(*r.Deadline, time.UTC)
		rec.Deadline = &d
	}
	if r.AuditCreatedAt != nil {
		rec.CreatedAt = *r.AuditCreatedAt
	}
	if r.AuditUpdatedAt != nil {
		rec.UpdatedAt = *r.AuditUpdatedAt
	}
	row.Audit = rec
	return row
}
