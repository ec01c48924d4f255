package client

import (
	"encoding/json"
	"strings"
	"time"
)

// Audit is the server's view of one audit record.
type Audit struct {
	ID            string    `json:"id"`
	RegulationID  int64     `json:"regulationId"`
	Status        string    `json:"status"`
	Conformity    *string   `json:"conformity"`
	Priority      *string   `json:"priority"`
	Feasibility   *string   `json:"feasibility"`
	ActionPlan    string    `json:"actionPlan"`
	Deadline      *string   `json:"deadline"`
	Owner         *string   `json:"owner"`
	EditingUserID *string   `json:"editingUserId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Regulation is a read-only catalog entry.
type Regulation struct {
	ID                int64  `json:"id"`
	Domain            string `json:"domain"`
	Chapter           string `json:"chapter"`
	SubChapter        string `json:"subChapter"`
	Title             string `json:"title"`
	Requirement       string `json:"requirement"`
	LegalReferences   string `json:"legalReferences"`
	RequiredDocuments string `json:"requiredDocuments"`
}

// Row is a catalog entry merged with the audit visible to the caller, if any.
type Row struct {
	Regulation
	Audit *Audit `json:"audit"`
}

// Editor identifies the user who last saved an audit.
type Editor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuditItem is an audit joined with its regulation and editor.
type AuditItem struct {
	Audit
	Regulation Regulation `json:"regulation"`
	Editor     *Editor    `json:"editor"`
}

// Stats mirrors the dashboard payload.
type Stats struct {
	Totals struct {
		RegulationCount int `json:"regulationCount"`
		AuditedCount    int `json:"auditedCount"`
		AuditRate       int `json:"auditRate"`
	} `json:"totals"`
	Conformity []struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	} `json:"conformity"`
	Domains []struct {
		Domain       string `json:"domain"`
		TotalCount   int    `json:"totalCount"`
		AuditedCount int    `json:"auditedCount"`
	} `json:"domains"`
	UpcomingDeadlines []AuditItem `json:"upcomingDeadlines"`
}

// AuditFields are the editable values of an audit.
type AuditFields struct {
	Conformity  string `json:"conformity"`
	Priority    string `json:"priority"`
	Feasibility string `json:"feasibility"`
	ActionPlan  string `json:"actionPlan"`
	Deadline    string `json:"deadline"`
	Owner       string `json:"owner"`
}

func (f AuditFields) trimmed() AuditFields {
	return AuditFields{
		Conformity:  strings.TrimSpace(f.Conformity),
		Priority:    strings.TrimSpace(f.Priority),
		Feasibility: strings.TrimSpace(f.Feasibility),
		ActionPlan:  strings.TrimSpace(f.ActionPlan),
		Deadline:    strings.TrimSpace(f.Deadline),
		Owner:       strings.TrimSpace(f.Owner),
	}
}

// SaveRequest is the body of a single save and of each bulk item.
type SaveRequest struct {
	RegulationID int64 `json:"regulationId"`
	AuditFields
}

// BulkFailure reports one rejected bulk item. Input is echoed verbatim
// because a rejected item may not be a valid SaveRequest.
type BulkFailure struct {
	Index  int             `json:"index"`
	Input  json.RawMessage `json:"input"`
	Reason string          `json:"reason"`
}

// BulkResult is the per-item outcome of a bulk save.
type BulkResult struct {
	Succeeded []Audit       `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}
