package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func TestRepo_CountByConformity_AdminHasNoScopeArgs(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM audits a WHERE \(1=1\) AND a.conformity IS NOT NULL .* GROUP BY a.conformity`).
		WithArgs().
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("compliant", 3).
			AddRow("non_compliant", 1))

	got, err := repo.CountByConformity(context.Background(), domain.AdminScope())
	if err != nil {
		t.Fatalf("CountByConformity: %v", err)
	}
	want := []domain.ConformityCount{
		{Status: domain.ConformityCompliant, Count: 3},
		{Status: domain.ConformityNonCompliant, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepo_DomainCoverage_ScopeInJoin(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)
	owner := uuid.New()

	mock.ExpectQuery(`FROM regulations r LEFT JOIN audits a ON a.regulation_id = r.id AND \(a.editing_user_id IS NULL OR a.editing_user_id = \$1\) GROUP BY r.domain`).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"domain", "total_count", "audited_count"}).
			AddRow("Finance", 4, 1).
			AddRow("Security", 2, 0))

	got, err := repo.DomainCoverage(context.Background(), domain.OwnerScope(owner))
	if err != nil {
		t.Fatalf("DomainCoverage: %v", err)
	}
	if len(got) != 2 || got[0].Domain != "Finance" || got[0].TotalCount != 4 || got[0].AuditedCount != 1 {
		t.Errorf("coverage = %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
