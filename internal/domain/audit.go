package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditFields are the mutable fields of an audit record. An upsert replaces
// all of them at once.
type AuditFields struct {
	Conformity  *Conformity
	Priority    *Priority
	Feasibility *Feasibility
	ActionPlan  string
	Deadline    *time.Time // calendar date, midnight UTC
	Owner       *string
}

// AuditRecord is the compliance assessment attached to exactly one regulation.
type AuditRecord struct {
	ID            uuid.UUID
	RegulationID  int64
	AuditFields
	EditingUserID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAudited reports whether the record carries a conformity status.
// Records without one count as pending.
func (a *AuditRecord) IsAudited() bool {
	return a != nil && a.Conformity != nil && *a.Conformity != ""
}

// Status returns the conformity of the record, or ConformityPending.
func (a *AuditRecord) Status() Conformity {
	if !a.IsAudited() {
		return ConformityPending
	}
	return *a.Conformity
}

// SaveOutcome describes what an upsert did to the stored row.
type SaveOutcome struct {
	Created bool
	// PreviousEditor is the editor before the save; nil for a new or
	// unclaimed record.
	PreviousEditor *uuid.UUID
}

// EditorChanged reports whether the save moved a claimed record to a
// different editor.
func (o SaveOutcome) EditorChanged(editor uuid.UUID) bool {
	return o.PreviousEditor != nil && *o.PreviousEditor != editor
}

// Editor is the identity of the user who last saved an audit.
type Editor struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// AuditListItem is an audit record joined with its regulation and editor.
type AuditListItem struct {
	AuditRecord
	Regulation Regulation
	Editor     *Editor
}

// AuditFilter narrows audit lists. Nil fields do not filter.
type AuditFilter struct {
	Conformity *Conformity
	Domain     *string
}

// Page is a 1-based offset pagination request.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// PageCount returns ceil(total/limit), or 0 when limit is not positive.
func PageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
