package postgres

import (
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

func TestScopePredicate_Admin(t *testing.T) {
	t.Parallel()

	sql, args, err := ScopePredicate(domain.AdminScope(), "a.editing_user_id").ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if sql != "(1=1)" {
		t.Errorf("sql = %q, want (1=1)", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestScopePredicate_Owner(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	sql, args, err := ScopePredicate(domain.OwnerScope(id), "a.editing_user_id").ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if want := "(a.editing_user_id IS NULL OR a.editing_user_id = ?)"; sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != id {
		t.Errorf("args = %v, want [%s]", args, id)
	}
}

func TestScopePredicate_NumberedWithOtherFilters(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	sql, args, err := Builder().
		Select("a.id").
		From("audits a").
		Where(ScopePredicate(domain.OwnerScope(id), "a.editing_user_id")).
		Where("r.domain = ?", "Security").
		ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	want := "SELECT a.id FROM audits a WHERE (a.editing_user_id IS NULL OR a.editing_user_id = $1) AND r.domain = $2"
	if sql != want {
		t.Errorf("sql = %q\nwant  %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2", args)
	}
}
