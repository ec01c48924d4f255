package rest

import (
	"time"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
	"github.com/heartmarshall/regaudit-backend/internal/service/audit"
)

// saveAuditRequest is the body of POST /audit and of each bulk item.
type saveAuditRequest struct {
	RegulationID int64  `json:"regulationId"`
	Conformity   string `json:"conformity"`
	Priority     string `json:"priority"`
	Feasibility  string `json:"feasibility"`
	ActionPlan   string `json:"actionPlan"`
	Deadline     string `json:"deadline"`
	Owner        string `json:"owner"`
}

func (req saveAuditRequest) toInput() audit.SaveInput {
	return audit.SaveInput{
		RegulationID: req.RegulationID,
		Conformity:   req.Conformity,
		Priority:     req.Priority,
		Feasibility:  req.Feasibility,
		ActionPlan:   req.ActionPlan,
		Deadline:     req.Deadline,
		Owner:        req.Owner,
	}
}

type auditResponse struct {
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

type regulationResponse struct {
	ID                int64  `json:"id"`
	Domain            string `json:"domain"`
	Chapter           string `json:"chapter"`
	SubChapter        string `json:"subChapter"`
	Title             string `json:"title"`
	Requirement       string `json:"requirement"`
	LegalReferences   string `json:"legalReferences"`
	RequiredDocuments string `json:"requiredDocuments"`
}

type editorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type auditItemResponse struct {
	auditResponse
	Regulation regulationResponse `json:"regulation"`
	Editor     *editorResponse    `json:"editor"`
}

type catalogRowResponse struct {
	regulationResponse
	Audit *auditResponse `json:"audit"`
}

type paginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type listAuditsResponse struct {
	Items      []auditItemResponse `json:"items"`
	Pagination paginationResponse  `json:"pagination"`
}

type conformityCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type domainCoverageResponse struct {
	Domain       string `json:"domain"`
	TotalCount   int    `json:"totalCount"`
	AuditedCount int    `json:"auditedCount"`
}

type totalsResponse struct {
	RegulationCount int `json:"regulationCount"`
	AuditedCount    int `json:"auditedCount"`
	AuditRate       int `json:"auditRate"`
}

type statsResponse struct {
	Totals            totalsResponse            `json:"totals"`
	Conformity        []conformityCountResponse `json:"conformity"`
	Domains           []domainCoverageResponse  `json:"domains"`
	UpcomingDeadlines []auditItemResponse       `json:"upcomingDeadlines"`
}

type filtersResponse struct {
	Conformity string `json:"conformity,omitempty"`
	Domain     string `json:"domain,omitempty"`
}

type reportResponse struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Filters     filtersResponse     `json:"filters"`
	Stats       statsResponse       `json:"stats"`
	Items       []auditItemResponse `json:"items"`
}

func toAuditResponse(a domain.AuditRecord) auditResponse {
	resp := auditResponse{
		ID:           a.ID.String(),
		RegulationID: a.RegulationID,
		Status:       a.Status().String(),
		Conformity:   stringOf(a.Conformity),
		Priority:     stringOf(a.Priority),
		Feasibility:  stringOf(a.Feasibility),
		ActionPlan:   a.ActionPlan,
		Owner:        a.Owner,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Deadline != nil {
		d := domain.FormatDate(*a.Deadline)
		resp.Deadline = &d
	}
	if a.EditingUserID != nil {
		id := a.EditingUserID.String()
		resp.EditingUserID = &id
	}
	return resp
}

func toRegulationResponse(r domain.Regulation) regulationResponse {
	return regulationResponse{
		ID:                r.ID,
		Domain:            r.Domain,
		Chapter:           r.Chapter,
		SubChapter:        r.SubChapter,
		Title:             r.Title,
		Requirement:       r.Requirement,
		LegalReferences:   r.LegalReferences,
		RequiredDocuments: r.RequiredDocuments,
	}
}

func toAuditItemResponse(it domain.AuditListItem) auditItemResponse {
	resp := auditItemResponse{
		auditResponse: toAuditResponse(it.AuditRecord),
		Regulation:    toRegulationResponse(it.Regulation),
	}
	if it.Editor != nil {
		resp.Editor = &editorResponse{ID: it.Editor.ID.String(), Name: it.Editor.Name, Email: it.Editor.Email}
	}
	return resp
}

func toAuditItemResponses(items []domain.AuditListItem) []auditItemResponse {
	out := make([]auditItemResponse, len(items))
	for i, it := range items {
		out[i] = toAuditItemResponse(it)
	}
	return out
}

func toCatalogResponse(rows []domain.CatalogRow) []catalogRowResponse {
	out := make([]catalogRowResponse, len(rows))
	for i, row := range rows {
		out[i] = catalogRowResponse{regulationResponse: toRegulationResponse(row.Regulation)}
		if row.Audit != nil {
			a := toAuditResponse(*row.Audit)
			out[i].Audit = &a
		}
	}
	return out
}

func toStatsResponse(s domain.DashboardStats) statsResponse {
	resp := statsResponse{
		Totals: totalsResponse{
			RegulationCount: s.Totals.RegulationCount,
			AuditedCount:    s.Totals.AuditedCount,
			AuditRate:       s.Totals.AuditRate,
		},
		Conformity:        make([]conformityCountResponse, len(s.Conformity)),
		Domains:           make([]domainCoverageResponse, len(s.Domains)),
		UpcomingDeadlines: toAuditItemResponses(s.UpcomingDeadlines),
	}
	for i, c := range s.Conformity {
		resp.Conformity[i] = conformityCountResponse{Status: c.Status.String(), Count: c.Count}
	}
	for i, d := range s.Domains {
		resp.Domains[i] = domainCoverageResponse{Domain: d.Domain, TotalCount: d.TotalCount, AuditedCount: d.AuditedCount}
	}
	return resp
}

func stringOf[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
