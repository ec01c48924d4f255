package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
	"github.com/heartmarshall/regaudit-backend/internal/service/audit"
)

type auditService interface {
	Save(ctx context.Context, input audit.SaveInput) (domain.AuditRecord, error)
	Get(ctx context.Context, regulationID int64) (domain.AuditListItem, error)
	List(ctx context.Context, input audit.ListInput) (audit.ListResult, error)
	BulkSave(ctx context.Context, items []audit.BulkItem) (audit.BulkResult, error)
}

// AuditHandler serves the audit record endpoints.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

type saveAuditResponse struct {
	Success bool          `json:"success"`
	Audit   auditResponse `json:"audit"`
}

// Save handles POST /audit.
func (h *AuditHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveAuditRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Save(r.Context(), req.toInput())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saveAuditResponse{Success: true, Audit: toAuditResponse(rec)})
}

// Get handles GET /audit/{regulationId}.
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "regulationId"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid regulation id")
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuditItemResponse(item))
}

// Mine handles GET /audit/mine?page&limit&conformity&domain.
func (h *AuditHandler) Mine(w http.ResponseWriter, r *http.Request) {
	input, err := listInputFromQuery(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listAuditsResponse{
		Items: toAuditItemResponses(res.Items),
		Pagination: paginationResponse{
			Total: res.Total,
			Page:  res.Page,
			Limit: res.Limit,
			Pages: res.Pages,
		},
	})
}

func listInputFromQuery(r *http.Request) (audit.ListInput, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return audit.ListInput{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return audit.ListInput{}, err
	}
	q := r.URL.Query()
	return audit.ListInput{
		Page:       page,
		Limit:      limit,
		Conformity: q.Get("conformity"),
		Domain:     q.Get("domain"),
	}, nil
}
