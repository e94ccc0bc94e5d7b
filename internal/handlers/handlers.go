// Package handlers implements the console's REST API.
package handlers

import (
	"encoding/json"
	"net/http"

	"pipeline-console/internal/auth"
	"pipeline-console/internal/batchexports"
	"pipeline-console/internal/catalog"
	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/common/logging"
	"pipeline-console/internal/navigation"
	"pipeline-console/internal/timeline"
)

// Handlers bundles the console's HTTP handlers and their collaborators.
type Handlers struct {
	selector  *catalog.Selector
	services  *batchexports.Registry
	exports   *batchexports.Store
	timeline  *timeline.Store
	auth      *auth.Auth
	navigator navigation.Navigator
	logger    logging.Logger
}

// New creates the handler set.
func New(
	selector *catalog.Selector,
	services *batchexports.Registry,
	exports *batchexports.Store,
	timelineStore *timeline.Store,
	authManager *auth.Auth,
	navigator navigation.Navigator,
) *Handlers {
	return &Handlers{
		selector:  selector,
		services:  services,
		exports:   exports,
		timeline:  timelineStore,
		auth:      authManager,
		navigator: navigator,
		logger:    logging.WithFields(logging.Field{Key: "component", Value: "handlers"}),
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps typed application errors to HTTP statuses. Field
// validation errors keep their per-field messages in the body.
func writeError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case errors.ErrTypeValidation:
		status = http.StatusBadRequest
	case errors.ErrTypeNotFound:
		status = http.StatusNotFound
	case errors.ErrTypeUnavailable:
		status = http.StatusConflict
	}

	body := map[string]interface{}{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	writeJSON(w, status, body)
}

// HealthCheck reports service liveness.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "Service status"
// @Router /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
