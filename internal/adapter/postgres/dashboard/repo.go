// Package dashboard runs the aggregate queries behind dashboard statistics.
// All queries take an access scope; callers run them inside one read-only
// transaction so the numbers agree with each other.
package dashboard

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/regaudit-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

const audited = "a.conformity IS NOT NULL AND a.conformity <> ''"

// Repo provides dashboard aggregates backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new dashboard repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// CountByConformity returns one bucket per stored conformity status among
// the scoped audits. Pending is derived by the caller.
func (r *Repo) CountByConformity(ctx context.Context, scope domain.AccessScope) ([]domain.ConformityCount, error) {
	query, args, err := postgres.Builder().
		Select("a.conformity AS status", "count(*) AS count").
		From("audits a").
		Where(postgres.ScopePredicate(scope, "a.editing_user_id")).
		Where(sq.Expr(audited)).
		GroupBy("a.conformity").
		OrderBy("a.conformity").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build conformity breakdown: %w", err)
	}

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("conformity breakdown: %w", err)
	}

	out := make([]domain.ConformityCount, len(rows))
	for i, row := range rows {
		out[i] = domain.ConformityCount{Status: domain.Conformity(row.Status), Count: row.Count}
	}
	return out, nil
}

// DomainCoverage returns, for every catalog domain, the number of
// regulations and how many of them carry a scoped audit with a status.
// Ordered by domain name.
func (r *Repo) DomainCoverage(ctx context.Context, scope domain.AccessScope) ([]domain.DomainCoverage, error) {
	scopeSQL, scopeArgs, err := postgres.ScopePredicate(scope, "a.editing_user_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build scope: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(
			"r.domain AS domain",
			"count(*) AS total_count",
			"count(a.id) FILTER (WHERE "+audited+") AS audited_count",
		).
		From("regulations r").
		LeftJoin("audits a ON a.regulation_id = r.id AND "+scopeSQL, scopeArgs...).
		GroupBy("r.domain").
		OrderBy("r.domain").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build domain coverage: %w", err)
	}

	var rows []struct {
		Domain       string `db:"domain"`
		TotalCount   int    `db:"total_count"`
		AuditedCount int    `db:"audited_count"`
	}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("domain coverage: %w", err)
	}

	out := make([]domain.DomainCoverage, len(rows))
	for i, row := range rows {
		out[i] = domain.DomainCoverage{Domain: row.Domain, TotalCount: row.TotalCount, AuditedCount: row.AuditedCount}
	}
	return out, nil
}
