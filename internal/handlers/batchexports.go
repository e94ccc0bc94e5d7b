package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pipeline-console/internal/batchexports"
	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/stages"
)

// GetBatchExports lists all saved batch-export configurations.
// @Summary List batch exports
// @Tags batch-exports
// @Produce json
// @Security SessionAuth
// @Success 200 {array} batchexports.Config "Saved configurations"
// @Router /batch-exports [get]
func (h *Handlers) GetBatchExports(w http.ResponseWriter, r *http.Request) {
	configs, err := h.exports.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if configs == nil {
		configs = []batchexports.Config{}
	}
	writeJSON(w, http.StatusOK, configs)
}

// CreateBatchExport submits a new batch-export draft.
// @Summary Create batch export
// @Description Submits the whole draft atomically. Field validation failures report per-field messages and save nothing.
// @Tags batch-exports
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param config body batchexports.Config true "Draft configuration"
// @Success 201 {object} batchexports.Config "Saved configuration"
// @Failure 400 {object} map[string]interface{} "Field validation errors"
// @Router /batch-exports [post]
func (h *Handlers) CreateBatchExport(w http.ResponseWriter, r *http.Request) {
	var draft batchexports.Config
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, errors.ValidationError("invalid request body: "+err.Error()))
		return
	}

	target := stages.ClassifyTarget(draft.Service)
	configurator, err := batchexports.NewConfigurator(
		h.exports, h.services, stages.StageDestination, target, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	saved, err := configurator.Submit(draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// GetBatchExport returns one saved configuration.
// @Summary Get batch export
// @Tags batch-exports
// @Produce json
// @Security SessionAuth
// @Param id path int true "Batch export id"
// @Success 200 {object} batchexports.Config
// @Failure 404 {object} map[string]string "Not found"
// @Router /batch-exports/{id} [get]
func (h *Handlers) GetBatchExport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errors.ValidationError("invalid batch export id"))
		return
	}
	cfg, err := h.exports.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// UpdateBatchExport submits an edited draft over a saved configuration.
// @Summary Update batch export
// @Tags batch-exports
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Batch export id"
// @Param config body batchexports.Config true "Draft configuration"
// @Success 200 {object} batchexports.Config "Saved configuration"
// @Failure 400 {object} map[string]interface{} "Field validation errors"
// @Failure 404 {object} map[string]string "Not found"
// @Router /batch-exports/{id} [put]
func (h *Handlers) UpdateBatchExport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errors.ValidationError("invalid batch export id"))
		return
	}

	var draft batchexports.Config
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, errors.ValidationError("invalid request body: "+err.Error()))
		return
	}

	saved, err := h.exports.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	configurator, err := batchexports.NewConfigurator(
		h.exports, h.services, stages.StageDestination,
		stages.ClassifyTarget(saved.Service), id)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := configurator.Submit(draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBatchExport removes a saved configuration.
// @Summary Delete batch export
// @Tags batch-exports
// @Security SessionAuth
// @Param id path int true "Batch export id"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Router /batch-exports/{id} [delete]
func (h *Handlers) DeleteBatchExport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errors.ValidationError("invalid batch export id"))
		return
	}
	if err := h.exports.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetBatchExport restores the draft of a saved configuration to its
// baseline and returns it.
// @Summary Reset batch export draft
// @Description Returns the last saved values, discarding any in-progress edits. Idempotent.
// @Tags batch-exports
// @Produce json
// @Security SessionAuth
// @Param id path int true "Batch export id"
// @Success 200 {object} batchexports.Config "Baseline draft"
// @Failure 404 {object} map[string]string "Not found"
// @Router /batch-exports/{id}/reset [post]
func (h *Handlers) ResetBatchExport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errors.ValidationError("invalid batch export id"))
		return
	}

	saved, err := h.exports.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	configurator, err := batchexports.NewConfigurator(
		h.exports, h.services, stages.StageDestination,
		stages.ClassifyTarget(saved.Service), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configurator.Reset())
}
