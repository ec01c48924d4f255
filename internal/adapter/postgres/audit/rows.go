package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// RecordRow is the scan target for audits columns.
type RecordRow struct {
	ID            uuid.UUID  `db:"id"`
	RegulationID  int64      `db:"regulation_id"`
	Conformity    *string    `db:"conformity"`
	Priority      *string    `db:"priority"`
	Feasibility   *string    `db:"feasibility"`
	ActionPlan    string     `db:"action_plan"`
	Deadline      *time.Time `db:"deadline"`
	Owner         *string    `db:"owner"`
	EditingUserID *uuid.UUID `db:"editing_user_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type upsertRow struct {
	RecordRow
	Inserted              bool       `db:"inserted"`
	PreviousEditingUserID *uuid.UUID `db:"previous_editing_user_id"`
}

type itemRow struct {
	RecordRow
	RegDomain            string    `db:"reg_domain"`
	RegChapter           string    `db:"reg_chapter"`
	RegSubChapter        string    `db:"reg_sub_chapter"`
	RegTitle             string    `db:"reg_title"`
	RegRequirement       string    `db:"reg_requirement"`
	RegLegalReferences   string    `db:"reg_legal_references"`
	RegRequiredDocuments string    `db:"reg_required_documents"`
	RegCreatedAt         time.Time `db:"reg_created_at"`
	EditorName           *string   `db:"editor_name"`
	EditorEmail          *string   `db:"editor_email"`
}

func (r RecordRow) toDomain() domain.AuditRecord {
	rec := domain.AuditRecord{
		ID:           r.ID,
		RegulationID: r.RegulationID,
		AuditFields: domain.AuditFields{
			ActionPlan: r.ActionPlan,
			Owner:      r.Owner,
		},
		EditingUserID: r.EditingUserID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
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
	return rec
}

func (r itemRow) toDomain() domain.AuditListItem {
	item := domain.AuditListItem{
		AuditRecord: r.RecordRow.toDomain(),
		Regulation: domain.Regulation{
			ID:                r.RegulationID,
			Domain:            r.RegDomain,
			Chapter:           r.RegChapter,
			SubChapter:        r.RegSubChapter,
			Title:             r.RegTitle,
			Requirement:       r.RegRequirement,
			LegalReferences:   r.RegLegalReferences,
			RequiredDocuments: r.RegRequiredDocuments,
			CreatedAt:         r.RegCreatedAt,
		},
	}
	if r.EditingUserID != nil {
		item.Editor = &domain.Editor{ID: *r.EditingUserID}
		if r.EditorName != nil {
			item.Editor.Name = *r.EditorName
		}
		if r.EditorEmail != nil {
			item.Editor.Email = *r.EditorEmail
		}
	}
	return item
}

func toItems(rows []itemRow) []domain.AuditListItem {
	items := make([]domain.AuditListItem, len(rows))
	for i, row := range rows {
		items[i] = row.toDomain()
	}
	return items
}
