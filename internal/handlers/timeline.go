package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/common/pagination"
	"pipeline-console/internal/timeline"
)

// GetPersonActivity returns a page of a person's session-folded activity.
// @Summary Person activity timeline
// @Description Returns the person's events folded into sessions, most recently ended first.
// @Tags persons
// @Produce json
// @Security SessionAuth
// @Param id path string true "Person id"
// @Param page query int false "Page number"
// @Param per_page query int false "Sessions per page"
// @Success 200 {object} pagination.Response[timeline.Session]
// @Router /persons/{id}/activity [get]
func (h *Handlers) GetPersonActivity(w http.ResponseWriter, r *http.Request) {
	personID := mux.Vars(r)["id"]
	if personID == "" {
		writeError(w, errors.ValidationError("person id must not be empty"))
		return
	}

	params := pagination.ParseParams(r)
	sessions, total, err := h.timeline.Activity(personID, params.Limit, params.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []timeline.Session{}
	}
	writeJSON(w, http.StatusOK,
		pagination.NewResponse(sessions, params.Page, params.PerPage, total))
}
