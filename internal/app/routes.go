package app

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"pipeline-console/internal/handlers"
	"pipeline-console/internal/middleware"
)

// SetupRoutes configures all HTTP routes for the console.
func SetupRoutes(router *mux.Router, h *handlers.Handlers, authMiddleware func(http.Handler) http.Handler) {
	router.Use(middleware.Logging)

	// Auth routes (no auth required for login)
	router.HandleFunc("/api/auth/login", h.HandleLogin).Methods("POST")
	router.HandleFunc("/api/auth/logout", h.HandleLogout).Methods("POST")

	// Health check (no auth required)
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")

	// Swagger UI (no auth required)
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Protected routes
	protected := router.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	api := protected.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/me", h.HandleGetCurrentUser).Methods("GET")
	api.HandleFunc("/auth/impersonate", h.HandleImpersonate).Methods("POST")

	// Node-creation flow
	api.HandleFunc("/pipeline/{stage}/options", h.GetPipelineOptions).Methods("GET")
	api.HandleFunc("/pipeline/{stage}/options/{id}/select", h.SelectPipelineOption).Methods("POST")
	api.HandleFunc("/pipeline/{stage}/new/{target}", h.GetNodeCreation).Methods("GET")
	api.HandleFunc("/pipeline/{stage}/breadcrumbs", h.GetBreadcrumbs).Methods("GET")

	// Batch-export configuration
	api.HandleFunc("/batch-exports", h.GetBatchExports).Methods("GET")
	api.HandleFunc("/batch-exports", h.CreateBatchExport).Methods("POST")
	api.HandleFunc("/batch-exports/{id}", h.GetBatchExport).Methods("GET")
	api.HandleFunc("/batch-exports/{id}", h.UpdateBatchExport).Methods("PUT")
	api.HandleFunc("/batch-exports/{id}", h.DeleteBatchExport).Methods("DELETE")
	api.HandleFunc("/batch-exports/{id}/reset", h.ResetBatchExport).Methods("POST")

	// Person activity timeline
	api.HandleFunc("/persons/{id}/activity", h.GetPersonActivity).Methods("GET")
}
