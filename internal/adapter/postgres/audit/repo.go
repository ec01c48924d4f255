// Package audit implements the audit record store on PostgreSQL.
// Every read goes through postgres.ScopePredicate; writes are single
// INSERT ... ON CONFLICT statements keyed by regulation_id.
package audit

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

const editorColumn = "a.editing_user_id"

var itemColumns = []string{
	"a.id", "a.regulation_id", "a.conformity", "a.priority", "a.feasibility",
	"a.action_plan", "a.deadline", "a.owner", "a.editing_user_id", "a.created_at", "a.updated_at",
	"r.domain AS reg_domain", "r.chapter AS reg_chapter", "r.sub_chapter AS reg_sub_chapter",
	"r.title AS reg_title", "r.requirement AS reg_requirement",
	"r.legal_references AS reg_legal_references", "r.required_documents AS reg_required_documents",
	"r.created_at AS reg_created_at",
	"u.name AS editor_name", "u.email AS editor_email",
}

// Repo provides audit record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new audit repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert inserts the audit for regulationID or replaces every mutable field
// of the existing one, reassigning the editor. The regulation_id unique
// constraint makes concurrent first saves converge on one row.
// An unknown regulation surfaces as domain.ErrNotFound.
func (r *Repo) Upsert(ctx context.Context, regulationID int64, fields domain.AuditFields, editor uuid.UUID) (domain.AuditRecord, domain.SaveOutcome, error) {
	query, args, err := postgres.Builder().
		Insert("audits").
		Prefix("WITH prev AS (SELECT editing_user_id FROM audits WHERE regulation_id = ?)", regulationID).
		Columns("regulation_id", "conformity", "priority", "feasibility", "action_plan", "deadline", "owner", "editing_user_id").
		Values(
			regulationID,
			stringPtr(fields.Conformity),
			stringPtr(fields.Priority),
			stringPtr(fields.Feasibility),
			fields.ActionPlan,
			fields.Deadline,
			fields.Owner,
			editor,
		).
		Suffix(`ON CONFLICT (regulation_id) DO UPDATE SET
			conformity = EXCLUDED.conformity,
			priority = EXCLUDED.priority,
			feasibility = EXCLUDED.feasibility,
			action_plan = EXCLUDED.action_plan,
			deadline = EXCLUDED.deadline,
			owner = EXCLUDED.owner,
			editing_user_id = EXCLUDED.editing_user_id,
			updated_at = now()
		RETURNING id, regulation_id, conformity, priority, feasibility, action_plan, deadline, owner,
			editing_user_id, created_at, updated_at,
			(xmax = 0) AS inserted,
			(SELECT editing_user_id FROM prev) AS previous_editing_user_id`).
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, domain.SaveOutcome{}, fmt.Errorf("build upsert audit: %w", err)
	}

	var row upsertRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.AuditRecord{}, domain.SaveOutcome{}, postgres.MapError(err, "regulation", regulationID)
	}

	outcome := domain.SaveOutcome{
		Created:        row.Inserted,
		PreviousEditor: row.PreviousEditingUserID,
	}
	return row.toDomain(), outcome, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByRegulation returns the audit of a regulation joined with the
// regulation and its editor. A record outside scope is reported as
// domain.ErrNotFound, exactly like a missing one.
func (r *Repo) GetByRegulation(ctx context.Context, scope domain.AccessScope, regulationID int64) (domain.AuditListItem, error) {
	query, args, err := r.selectItems(scope).
		Where(sq.Eq{"a.regulation_id": regulationID}).
		ToSql()
	if err != nil {
		return domain.AuditListItem{}, fmt.Errorf("build get audit: %w", err)
	}

	var row itemRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.AuditListItem{}, postgres.MapError(err, "audit for regulation", regulationID)
	}

	return row.toDomain(), nil
}

// List returns one page of scoped audits, most recently updated first, and
// the number of rows matching the same predicate.
func (r *Repo) List(ctx context.Context, scope domain.AccessScope, filter domain.AuditFilter, page domain.Page) ([]domain.AuditListItem, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	countQuery, countArgs, err := applyFilter(
		postgres.Builder().
			Select("count(*)").
			From("audits a").
			Join("regulations r ON r.id = a.regulation_id").
			Where(postgres.ScopePredicate(scope, editorColumn)),
		filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count audits: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audits: %w", err)
	}

	if total == 0 {
		return []domain.AuditListItem{}, 0, nil
	}

	listQuery, listArgs, err := applyFilter(r.selectItems(scope), filter).
		OrderBy("a.updated_at DESC", "a.id").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list audits: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, q, &rows, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list audits: %w", err)
	}

	return toItems(rows), total, nil
}

// ListAll returns every scoped audit matching filter in list order. It
// feeds exports, which are not paginated.
func (r *Repo) ListAll(ctx context.Context, scope domain.AccessScope, filter domain.AuditFilter) ([]domain.AuditListItem, error) {
	query, args, err := applyFilter(r.selectItems(scope), filter).
		OrderBy("a.updated_at DESC", "a.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list all audits: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list all audits: %w", err)
	}

	return toItems(rows), nil
}

// ListDueBetween returns scoped audits whose deadline lies in [from, to],
// both bounds inclusive, earliest deadline first.
func (r *Repo) ListDueBetween(ctx context.Context, scope domain.AccessScope, from, to time.Time) ([]domain.AuditListItem, error) {
	query, args, err := r.selectItems(scope).
		Where(sq.GtOrEq{"a.deadline": from}).
		Where(sq.LtOrEq{"a.deadline": to}).
		OrderBy("a.deadline ASC", "a.regulation_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list due audits: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list due audits: %w", err)
	}

	return toItems(rows), nil
}

// ---------------------------------------------------------------------------
// Query building
// ---------------------------------------------------------------------------

func (r *Repo) selectItems(scope domain.AccessScope) sq.SelectBuilder {
	return postgres.Builder().
		Select(itemColumns...).
		From("audits a").
		Join("regulations r ON r.id = a.regulation_id").
		LeftJoin("users u ON u.id = a.editing_user_id").
		Where(postgres.ScopePredicate(scope, editorColumn))
}

func applyFilter(b sq.SelectBuilder, f domain.AuditFilter) sq.SelectBuilder {
	if f.Conformity != nil {
		if *f.Conformity == domain.ConformityPending {
			b = b.Where(sq.Or{sq.Eq{"a.conformity": nil}, sq.Eq{"a.conformity": ""}})
		} else {
			b = b.Where(sq.Eq{"a.conformity": string(*f.Conformity)})
		}
	}
	if f.Domain != nil {
		b = b.Where(sq.Eq{"r.domain": *f.Domain})
	}
	return b
}

func stringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
