package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

type regulationService interface {
	Catalog(ctx context.Context, domainName string) ([]domain.CatalogRow, error)
	Domains(ctx context.Context) ([]string, error)
}

// RegulationHandler serves the catalog merged with the requester's audits.
type RegulationHandler struct {
	svc regulationService
	log *slog.Logger
}

// NewRegulationHandler creates a RegulationHandler.
func NewRegulationHandler(svc regulationService, logger *slog.Logger) *RegulationHandler {
	return &RegulationHandler{svc: svc, log: logger.With("handler", "regulation")}
}

// Catalog handles GET /regulations?domain=.
func (h *RegulationHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Catalog(r.Context(), r.URL.Query().Get("domain"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogResponse(rows))
}

// Domains handles GET /regulations/domains.
func (h *RegulationHandler) Domains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.svc.Domains(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if domains == nil {
		domains = []string{}
	}
	writeJSON(w, http.StatusOK, domains)
}
