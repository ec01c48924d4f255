//go:build e2e

package app

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/regaudit-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/regaudit-backend/internal/auth"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
	"github.com/heartmarshall/regaudit-backend/pkg/client"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

type e2eEnv struct {
	pool *pgxpool.Pool
	srv  *httptest.Server
	jwt  *auth.JWTManager
}

func setupE2E(t *testing.T) *e2eEnv {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)

	cfg := testConfig()
	cfg.RateLimit.RequestsPerMinute = 0
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	handler, stop := newHandler(logger, pool, cfg, prometheus.NewRegistry())
	t.Cleanup(stop)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &e2eEnv{
		pool: pool,
		srv:  srv,
		jwt:  auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, time.Hour),
	}
}

func (e *e2eEnv) countAudits(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.pool.QueryRow(context.Background(), `SELECT count(*) FROM audits`).Scan(&n))
	return n
}

func (e *e2eEnv) clientFor(t *testing.T, id uuid.UUID, role domain.UserRole) *client.Client {
	t.Helper()
	token, err := e.jwt.GenerateAccessToken(id, role)
	require.NoError(t, err)
	return client.New(e.srv.URL, client.WithHTTPClient(e.srv.Client()), client.WithToken(token))
}

func auditOf(t *testing.T, rows []client.Row, id int64) *client.Audit {
	t.Helper()
	for _, r := range rows {
		if r.ID == id {
			return r.Audit
		}
	}
	t.Fatalf("regulation %d missing from catalog", id)
	return nil
}

func TestE2E_ScopedAuditLifecycle(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()
	pool := env.pool

	alice := testhelper.SeedUser(t, pool, domain.UserRoleUser)
	bob := testhelper.SeedUser(t, pool, domain.UserRoleUser)
	r1 := testhelper.SeedRegulation(t, pool, "Security")
	r2 := testhelper.SeedRegulation(t, pool, "Security")
	r3 := testhelper.SeedRegulation(t, pool, "Privacy")

	aliceAPI := env.clientFor(t, alice.ID, domain.UserRoleUser)
	bobAPI := env.clientFor(t, bob.ID, domain.UserRoleUser)
	adminAPI := env.clientFor(t, uuid.New(), domain.UserRoleAdmin)

	// Unclaimed rows are visible to every user.
	rows, err := bobAPI.Catalog(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	saved, err := aliceAPI.SaveAudit(ctx, client.SaveRequest{
		RegulationID: r1.ID,
		AuditFields:  client.AuditFields{Conformity: "compliant", Owner: "Alice"},
	})
	require.NoError(t, err)
	require.NotNil(t, saved.EditingUserID)
	assert.Equal(t, alice.ID.String(), *saved.EditingUserID)

	// Alice's record is hidden from Bob but not from an admin.
	rows, err = bobAPI.Catalog(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, auditOf(t, rows, r1.ID))

	rows, err = adminAPI.Catalog(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, auditOf(t, rows, r1.ID))

	// Partial batch: the middle item has no regulation id.
	batch := []client.SaveRequest{
		{RegulationID: r2.ID, AuditFields: client.AuditFields{Conformity: "non_compliant", Priority: "high"}},
		{AuditFields: client.AuditFields{Conformity: "compliant"}},
		{RegulationID: r3.ID, AuditFields: client.AuditFields{Conformity: "compliant", Deadline: "2030-01-01"}},
	}
	res, err := bobAPI.BulkSave(ctx, batch)
	require.NoError(t, err)
	require.Len(t, res.Succeeded, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 1, res.Failed[0].Index)
	assert.Equal(t, 3, env.countAudits(t))

	// Resubmitting the same batch converges without new rows.
	_, err = bobAPI.BulkSave(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 3, env.countAudits(t))

	stats, err := adminAPI.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Totals.RegulationCount)
	assert.Equal(t, 3, stats.Totals.AuditedCount)
	assert.Equal(t, 100, stats.Totals.AuditRate)

	// A save by Bob reassigns Alice's record to him.
	_, err = bobAPI.SaveAudit(ctx, client.SaveRequest{
		RegulationID: r1.ID,
		AuditFields:  client.AuditFields{Conformity: "non_compliant"},
	})
	require.NoError(t, err)

	rows, err = aliceAPI.Catalog(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, auditOf(t, rows, r1.ID))

	// Unknown regulation surfaces as not found.
	_, err = aliceAPI.SaveAudit(ctx, client.SaveRequest{
		RegulationID: r3.ID + 1000,
		AuditFields:  client.AuditFields{Conformity: "compliant"},
	})
	assert.True(t, client.IsNotFound(err))
}

func TestE2E_SyncCache(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()
	pool := env.pool

	user := testhelper.SeedUser(t, pool, domain.UserRoleUser)
	reg := testhelper.SeedRegulation(t, pool, "Security")
	testhelper.SeedRegulation(t, pool, "Privacy")

	cache := client.NewSyncCache(env.clientFor(t, user.ID, domain.UserRoleUser), client.WithDebounce(10*time.Millisecond))
	defer cache.Close()

	require.NoError(t, cache.Refresh(ctx))
	snap := cache.Snapshot()
	assert.Equal(t, client.StateReady, snap.State)
	assert.Len(t, snap.Rows, 2)
	assert.ElementsMatch(t, []string{"Privacy", "Security"}, snap.Domains)

	_, err := cache.SaveAudit(ctx, reg.ID, client.AuditFields{Conformity: " compliant ", Owner: " Dana "})
	require.NoError(t, err)

	cache.SetDomain("Security")
	cache.SetSearch("dana")
	require.Eventually(t, func() bool { return cache.Snapshot().Search == "dana" }, 2*time.Second, 5*time.Millisecond)

	snap = cache.Snapshot()
	require.Len(t, snap.Visible, 1)
	require.NotNil(t, snap.Visible[0].Audit)
	assert.Equal(t, "Dana", *snap.Visible[0].Audit.Owner)
}
