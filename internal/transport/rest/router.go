package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/webstack-art/FormNest/internal/service"
	"github.com/webstack-art/FormNest/internal/transport/rest/handler"
	"github.com/webstack-art/FormNest/internal/transport/rest/middleware"
	"github.com/webstack-art/FormNest/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	FormService       *service.FormService
	SubmissionService *service.SubmissionService
	AnalyticsService  *service.AnalyticsService
	ExportService     *service.ExportService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.FormService)
	formHandler := handler.NewFormHandler(c.FormService)
	submissionHandler := handler.NewSubmissionHandler(c.SubmissionService)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService, c.ExportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.FormService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{formId}", formHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/respondents", authHandler.RespondentToken).Methods("POST", "OPTIONS")
	v1.Handle("/forms/{formId}/submissions",
		authMW.AttachRespondent(http.HandlerFunc(submissionHandler.Submit))).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/forms/{formId}/viewers", wsHandler.ViewerWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/forms/{formId}", formHandler.Update).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/forms/{formId}", formHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/forms/{formId}/submissions", submissionHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/submissions/{submissionId}", submissionHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/forms/{formId}/analytics", analyticsHandler.Report).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/forms/{formId}/export", analyticsHandler.Export).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
