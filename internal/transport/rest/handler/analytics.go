package handler

import (
	"fmt"
	"net/http"

	"github.com/webstack-art/FormNest/internal/service"
)

// AnalyticsHandler handles analytics and export endpoints.
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
	exportSvc    *service.ExportService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService, exportSvc *service.ExportService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
		exportSvc:    exportSvc,
	}
}

// Report handles GET /v1/forms/{formId}/analytics.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	hostID := hostIDOrFail(w, r)
	if hostID == "" {
		return
	}

	report, err := h.analyticsSvc.Report(r.Context(), formIDVar(r), hostID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Export handles GET /v1/forms/{formId}/export as a CSV download.
func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	hostID := hostIDOrFail(w, r)
	if hostID == "" {
		return
	}

	formID := formIDVar(r)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="form-%s-responses.csv"`, formID))

	if err := h.exportSvc.WriteCSV(r.Context(), formID, hostID, w); err != nil {
		// Headers may already be out; all we can do is log-and-abort via
		// the error body if nothing was written yet.
		writeServiceError(w, err)
	}
}
