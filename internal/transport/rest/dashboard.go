package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
	"github.com/heartmarshall/regaudit-backend/internal/service/audit"
	"github.com/heartmarshall/regaudit-backend/internal/service/report"
)

type statsService interface {
	ComputeStats(ctx context.Context, top int) (domain.DashboardStats, error)
}

type bulkSaver interface {
	BulkSave(ctx context.Context, items []audit.BulkItem) (audit.BulkResult, error)
}

type reportService interface {
	Build(ctx context.Context, filter audit.ListInput) (report.Report, error)
	WriteCSV(ctx context.Context, w io.Writer, filter audit.ListInput) (int, error)
}

// DashboardHandler serves statistics, batch saves and reports.
type DashboardHandler struct {
	stats   statsService
	audits  bulkSaver
	reports reportService
	log     *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(stats statsService, audits bulkSaver, reports reportService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:   stats,
		audits:  audits,
		reports: reports,
		log:     logger.With("handler", "dashboard"),
	}
}

// Stats handles GET /dashboard/stats?top=.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	top, err := queryInt(r, "top")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	stats, err := h.stats.ComputeStats(r.Context(), top)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

type bulkSaveRequest struct {
	Items []json.RawMessage `json:"items"`
}

type bulkFailureResponse struct {
	Index  int             `json:"index"`
	Input  json.RawMessage `json:"input"`
	Reason string          `json:"reason"`
}

type bulkSaveResponse struct {
	Succeeded []auditResponse       `json:"succeeded"`
	Failed    []bulkFailureResponse `json:"failed"`
}

// BulkSave handles POST /dashboard/bulk-save. Items are decoded one by one
// so a malformed entry fails alone; item failures never change the status
// code.
func (h *DashboardHandler) BulkSave(w http.ResponseWriter, r *http.Request) {
	var req bulkSaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]audit.BulkItem, len(req.Items))
	for i, raw := range req.Items {
		var item saveAuditRequest
		if err := json.Unmarshal(raw, &item); err != nil {
			items[i].DecodeErr = err
			continue
		}
		items[i].Input = item.toInput()
	}

	res, err := h.audits.BulkSave(r.Context(), items)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := bulkSaveResponse{
		Succeeded: make([]auditResponse, len(res.Succeeded)),
		Failed:    make([]bulkFailureResponse, len(res.Failed)),
	}
	for i, rec := range res.Succeeded {
		resp.Succeeded[i] = toAuditResponse(rec)
	}
	for i, f := range res.Failed {
		resp.Failed[i] = bulkFailureResponse{Index: f.Index, Input: req.Items[f.Index], Reason: f.Reason}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Export handles GET /dashboard/export?conformity&domain as CSV.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	var buf bytes.Buffer
	if _, err := h.reports.WriteCSV(r.Context(), &buf, filter); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	name := fmt.Sprintf("audits-%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// Report handles GET /dashboard/report?conformity&domain.
func (h *DashboardHandler) Report(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	rep, err := h.reports.Build(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		GeneratedAt: rep.GeneratedAt,
		Filters:     filtersResponse{Conformity: rep.Filters.Conformity, Domain: rep.Filters.Domain},
		Stats:       toStatsResponse(rep.Stats),
		Items:       toAuditItemResponses(rep.Items),
	})
}

func filterFromQuery(r *http.Request) audit.ListInput {
	q := r.URL.Query()
	return audit.ListInput{Conformity: q.Get("conformity"), Domain: q.Get("domain")}
}
