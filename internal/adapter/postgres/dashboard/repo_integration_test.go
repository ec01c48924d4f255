package dashboard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/regaudit-backend/internal/adapter/postgres/dashboard"
	"github.com/heartmarshall/regaudit-backend/internal/adapter/postgres/regulation"
	"github.com/heartmarshall/regaudit-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// Catalog-wide totals: no t.Parallel.
func TestRepo_Aggregates(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	f1 := testhelper.SeedRegulation(t, pool, "Finance")
	f2 := testhelper.SeedRegulation(t, pool, "Finance")
	s1 := testhelper.SeedRegulation(t, pool, "Security")
	testhelper.SeedRegulation(t, pool, "Security")

	testhelper.SeedAudit(t, pool, f1.ID, testhelper.Ptr(domain.ConformityCompliant), nil, &alice)
	testhelper.SeedAudit(t, pool, f2.ID, testhelper.Ptr(domain.ConformityNonCompliant), nil, &bob)
	testhelper.SeedAudit(t, pool, s1.ID, nil, nil, nil)

	total, err := regulation.New(pool).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 4 {
		t.Fatalf("regulations = %d, want 4", total)
	}

	repo := dashboard.New(pool)

	adminBuckets, err := repo.CountByConformity(ctx, domain.AdminScope())
	if err != nil {
		t.Fatalf("CountByConformity admin: %v", err)
	}
	if len(adminBuckets) != 2 {
		t.Fatalf("admin buckets = %+v, want compliant and non_compliant", adminBuckets)
	}

	aliceBuckets, err := repo.CountByConformity(ctx, domain.OwnerScope(alice))
	if err != nil {
		t.Fatalf("CountByConformity alice: %v", err)
	}
	if len(aliceBuckets) != 1 || aliceBuckets[0].Status != domain.ConformityCompliant || aliceBuckets[0].Count != 1 {
		t.Fatalf("alice buckets = %+v, want one compliant", aliceBuckets)
	}

	coverage, err := repo.DomainCoverage(ctx, domain.OwnerScope(alice))
	if err != nil {
		t.Fatalf("DomainCoverage: %v", err)
	}
	want := []domain.DomainCoverage{
		{Domain: "Finance", TotalCount: 2, AuditedCount: 1},
		{Domain: "Security", TotalCount: 2, AuditedCount: 0},
	}
	if len(coverage) != len(want) {
		t.Fatalf("coverage = %+v, want %+v", coverage, want)
	}
	for i := range want {
		if coverage[i] != want[i] {
			t.Errorf("coverage[%d] = %+v, want %+v", i, coverage[i], want[i])
		}
	}
}
