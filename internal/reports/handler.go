package reports

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/handlers"
	"github.com/stormsift/stormsift/pkg/routes"
)

// Handler provides HTTP endpoints for report operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reports"),
	}
}

// Routes returns the route group definition for report endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/sites", Handler: h.Summaries},
			{Method: "GET", Pattern: "/sites/{siteId}", Handler: h.SiteSummary},
			{Method: "POST", Pattern: "/sites/{siteId}/export", Handler: h.Export},
		},
	}
}

// Summaries returns per-site compliance summaries across all sites.
func (h *Handler) Summaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.sys.Summaries(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summaries)
}

// SiteSummary returns the compliance summary for a single site.
func (h *Handler) SiteSummary(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("siteId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoAnalyses)
		return
	}

	summary, err := h.sys.SiteSummary(r.Context(), siteID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Export writes a CSV of the site's analyses to blob storage and returns
// the export metadata.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	siteID, err := uuid.Parse(r.PathValue("siteId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoAnalyses)
		return
	}

	export, err := h.sys.ExportCSV(r.Context(), siteID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, export)
}
