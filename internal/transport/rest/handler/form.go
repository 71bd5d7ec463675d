package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/webstack-art/FormNest/internal/model"
	"github.com/webstack-art/FormNest/internal/service"
	"github.com/webstack-art/FormNest/internal/transport/rest/middleware"
)

// FormHandler handles form authoring endpoints.
type FormHandler struct {
	formSvc *service.FormService
}

// NewFormHandler creates a new form handler.
func NewFormHandler(formSvc *service.FormService) *FormHandler {
	return &FormHandler{formSvc: formSvc}
}

// SaveFormRequest is the request body for creating or updating a form.
type SaveFormRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Fields      []model.Field      `json:"fields"`
	Theme       model.Theme        `json:"theme"`
	Settings    model.FormSettings `json:"settings"`
}

// Create handles POST /v1/forms.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	hostID := hostIDOrFail(w, r)
	if hostID == "" {
		return
	}

	var req SaveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := &model.FormSchema{
		OwnerID:     hostID,
		Title:       req.Title,
		Description: req.Description,
		Fields:      req.Fields,
		Theme:       req.Theme,
		Settings:    req.Settings,
	}

	id, err := h.formSvc.Create(r.Context(), form)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSchema) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"formId": id})
}

// Update handles PUT /v1/forms/{formId}.
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	hostID := hostIDOrFail(w, r)
	if hostID == "" {
		return
	}

	var req SaveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := &model.FormSchema{
		ID:          formIDVar(r),
		OwnerID:     hostID,
		Title:       req.Title,
		Description: req.Description,
		Fields:      req.Fields,
		Theme:       req.Theme,
		Settings:    req.Settings,
	}

	if err := h.formSvc.Update(r.Context(), form); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Get handles GET /v1/forms/{formId}. Public: respondents fetch the schema
// to render the form.
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	form, err := h.formSvc.GetByID(r.Context(), formIDVar(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// List handles GET /v1/forms.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := hostIDOrFail(w, r)
	if hostID == "" {
		return
	}

	forms, err := h.formSvc.ListByOwner(r.Context(), hostID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
}

// Delete handles DELETE /v1/forms/{formId}.
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hostID := hostIDOrFail(w, r)
	if hostID == "" {
		return
	}

	if err := h.formSvc.Delete(r.Context(), formIDVar(r), hostID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func hostIDOrFail(w http.ResponseWriter, r *http.Request) string {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
	}
	return hostID
}

func formIDVar(r *http.Request) string {
	return mux.Vars(r)["formId"]
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFormNotFound), errors.Is(err, service.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidSchema):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrLoginRequired):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
