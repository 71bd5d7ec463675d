package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/webstack-art/FormNest/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
	formSvc *service.FormService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authSvc *service.AuthService, formSvc *service.FormService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, formSvc: formSvc}
}

// LoginRequest is the request body for host login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// RespondentToken handles POST /v1/forms/{formId}/respondents: it hands out
// a form-scoped token for forms that require login.
func (h *AuthHandler) RespondentToken(w http.ResponseWriter, r *http.Request) {
	formID := formIDVar(r)

	form, err := h.formSvc.GetByID(r.Context(), formID)
	if err != nil {
		if errors.Is(err, service.ErrFormNotFound) {
			writeError(w, http.StatusNotFound, "form not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !form.Settings.RequireLogin {
		writeError(w, http.StatusBadRequest, "form does not require login")
		return
	}

	token, respondentID, err := h.authSvc.GenerateRespondentToken(formID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":        token,
		"respondentId": respondentID,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
