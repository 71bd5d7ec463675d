package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/webstack-art/FormNest/internal/model"
	"github.com/webstack-art/FormNest/internal/service"
	"github.com/webstack-art/FormNest/internal/transport/rest/middleware"
)

// SubmissionHandler handles submission intake and management endpoints.
type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(submissionSvc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// SubmitRequest is the request body for submitting a response.
type SubmitRequest struct {
	Answers []model.Answer `json:"answers"`
}

// Submit handles POST /v1/forms/{formId}/submissions. Public, with an
// optional respondent token resolved by middleware.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	submission, result, err := h.submissionSvc.Submit(r.Context(), &service.SubmitRequest{
		FormID:       formIDVar(r),
		Answers:      req.Answers,
		RespondentID: middleware.GetRespondentID(r.Context()),
		IPAddress:    clientIP(r),
		UserAgent:    r.UserAgent(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !result.Accepted {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"submissionId": submission.ID,
		"submittedAt":  submission.SubmittedAt,
	})
}

// List handles GET /v1/forms/{formId}/submissions.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := hostIDOrFail(w, r)
	if hostID == "" {
		return
	}

	submissions, err := h.submissionSvc.ListByForm(r.Context(), formIDVar(r), hostID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": submissions})
}

// Delete handles DELETE /v1/submissions/{submissionId}.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hostID := hostIDOrFail(w, r)
	if hostID == "" {
		return
	}

	if err := h.submissionSvc.Delete(r.Context(), mux.Vars(r)["submissionId"], hostID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host
}
