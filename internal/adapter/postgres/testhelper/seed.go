package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with the given role and returns its identity.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.Editor {
	t.Helper()

	suffix := uniqueSuffix()
	editor := domain.Editor{
		ID:    uuid.New(),
		Email: "auditor-" + suffix + "@example.com",
		Name:  "Auditor " + suffix,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4)`,
		editor.ID, editor.Email, editor.Name, string(role),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return editor
}

// SeedRegulation inserts a catalog entry in the given domain. Every seeded
// regulation gets a distinct domain-prefixed title so searches stay local to
// the test that created it.
func SeedRegulation(t *testing.T, pool *pgxpool.Pool, domainName string) domain.Regulation {
	t.Helper()

	suffix := uniqueSuffix()
	reg := domain.Regulation{
		Domain:            domainName,
		Chapter:           "Chapter " + suffix,
		SubChapter:        "Section 1",
		Title:             "Requirement " + suffix,
		Requirement:       "The organisation shall keep records " + suffix,
		LegalReferences:   "Art. 5",
		RequiredDocuments: "Register",
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO regulations (domain, chapter, sub_chapter, title, requirement, legal_references, required_documents)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		reg.Domain, reg.Chapter, reg.SubChapter, reg.Title, reg.Requirement, reg.LegalReferences, reg.RequiredDocuments,
	).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRegulation: %v", err)
	}

	return reg
}

// SeedAudit inserts an audit row directly, bypassing the upsert path.
// editor may be nil to create an unclaimed record.
func SeedAudit(t *testing.T, pool *pgxpool.Pool, regulationID int64, conformity *domain.Conformity, deadline *time.Time, editor *uuid.UUID) domain.AuditRecord {
	t.Helper()

	rec := domain.AuditRecord{
		RegulationID:  regulationID,
		EditingUserID: editor,
		AuditFields: domain.AuditFields{
			Conformity: conformity,
			Deadline:   deadline,
		},
	}

	var status *string
	if conformity != nil {
		s := string(*conformity)
		status = &s
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO audits (regulation_id, conformity, deadline, editing_user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		regulationID, status, deadline, editor,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedAudit: %v", err)
	}

	return rec
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
