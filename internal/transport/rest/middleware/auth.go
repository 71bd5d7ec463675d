package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/webstack-art/FormNest/internal/service"
)

type contextKey string

const (
	HostIDKey       contextKey = "hostId"
	RespondentIDKey contextKey = "respondentId"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireHost validates a host JWT from the Authorization header.
func (m *AuthMiddleware) RequireHost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateHostToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), HostIDKey, claims.HostID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AttachRespondent resolves an optional respondent token. Submission
// endpoints stay public; forms that require login enforce the respondent id
// downstream in the service, so a missing or bad token just leaves the
// context empty here. Respondent tokens are form-scoped: a token minted for
// one form is ignored on any other form's route.
func (m *AuthMiddleware) AttachRespondent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authSvc.ValidateRespondentToken(token)
		if err != nil || claims.FormID != mux.Vars(r)["formId"] {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), RespondentIDKey, claims.RespondentID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetHostID extracts the host id from context.
func GetHostID(ctx context.Context) string {
	if v := ctx.Value(HostIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetRespondentID extracts the respondent id from context.
func GetRespondentID(ctx context.Context) string {
	if v := ctx.Value(RespondentIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
