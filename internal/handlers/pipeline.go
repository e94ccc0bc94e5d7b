package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pipeline-console/internal/auth"
	"pipeline-console/internal/batchexports"
	"pipeline-console/internal/catalog"
	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/common/logging"
	"pipeline-console/internal/common/pagination"
	"pipeline-console/internal/navigation"
	"pipeline-console/internal/stages"
)

// optionsResponse is the node selector table.
type optionsResponse struct {
	Stage     stages.Stage    `json:"stage"`
	Available bool            `json:"available"`
	Loading   bool            `json:"loading"`
	Message   string          `json:"message,omitempty"`
	Options   []catalog.Entry `json:"options,omitempty"`
}

// GetPipelineOptions returns the catalog of installable nodes for a stage.
// @Summary List node-creation options for a stage
// @Description Returns the ordered catalog of installable nodes. For the destination stage, batch-export services always precede plugins.
// @Tags pipeline
// @Produce json
// @Security SessionAuth
// @Param stage path string true "Plural stage tab, e.g. destinations"
// @Success 200 {object} optionsResponse "Catalog entries"
// @Success 202 {object} optionsResponse "Catalog still loading"
// @Failure 404 {object} map[string]string "Unknown stage"
// @Router /pipeline/{stage}/options [get]
func (h *Handlers) GetPipelineOptions(w http.ResponseWriter, r *http.Request) {
	stage, ok := stages.ResolveStage(mux.Vars(r)["stage"])
	if !ok {
		writeError(w, errors.NotFoundError("stage "+mux.Vars(r)["stage"]))
		return
	}

	options, loading, err := h.selector.Options(r.Context(), stage, auth.Impersonated(r))
	if err != nil {
		if errors.IsType(err, errors.ErrTypeUnavailable) {
			// A recognized stage without a creation catalog renders an
			// explicit unavailable notice, not an empty table.
			writeJSON(w, http.StatusOK, optionsResponse{
				Stage:     stage,
				Available: false,
				Message:   err.(*errors.AppError).Message,
			})
			return
		}
		writeError(w, err)
		return
	}
	if loading {
		writeJSON(w, http.StatusAccepted, optionsResponse{Stage: stage, Available: true, Loading: true})
		return
	}

	params := pagination.ParseParams(r)
	total := len(options)
	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, optionsResponse{
		Stage:     stage,
		Available: true,
		Options:   options[start:end],
	})
}

// SelectPipelineOption fires the navigation intent for a selected entry.
// @Summary Select a catalog entry for creation
// @Description Resolves the creation route for a selected entry. Navigation failure is reported, never retried.
// @Tags pipeline
// @Produce json
// @Security SessionAuth
// @Param stage path string true "Plural stage tab"
// @Param id path string true "Catalog entry id: plugin id or service name"
// @Success 200 {object} map[string]string "Creation path"
// @Failure 404 {object} map[string]string "Unknown stage or entry"
// @Router /pipeline/{stage}/options/{id}/select [post]
func (h *Handlers) SelectPipelineOption(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stage, ok := stages.ResolveStage(vars["stage"])
	if !ok {
		writeError(w, errors.NotFoundError("stage "+vars["stage"]))
		return
	}

	target := stages.ClassifyTarget(vars["id"])
	entry, err := h.selector.Find(r.Context(), stage, target, auth.Impersonated(r))
	if err != nil {
		writeError(w, err)
		return
	}

	path, err := h.navigator.Navigate(stage, entry.ID())
	if err != nil {
		// Fire-and-forget from the selector's perspective, but the failure
		// is surfaced to the caller instead of leaving them silently on
		// the selector.
		h.logger.Warn("navigation failed",
			logging.Field{Key: "stage", Value: string(stage)},
			logging.Field{Key: "entry", Value: entry.ID()},
			logging.Err(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

// creationResponse describes the form variant for a resolved target.
type creationResponse struct {
	Stage   stages.Stage                   `json:"stage"`
	Variant catalog.EntryKind              `json:"variant"`
	State   batchexports.State             `json:"state,omitempty"`
	IsNew   bool                           `json:"is_new,omitempty"`
	Entry   catalog.Entry                  `json:"entry"`
	Service *batchexports.ServiceDefinition `json:"service,omitempty"`
	Draft   *batchexports.Config           `json:"draft,omitempty"`
}

// GetNodeCreation resolves a creation target and returns the matching
// configuration form variant.
// @Summary Resolve a node-creation target
// @Description Classifies the target segment and returns the plugin or batch-export form variant. A batch-export target under a non-destination stage is not found.
// @Tags pipeline
// @Produce json
// @Security SessionAuth
// @Param stage path string true "Plural stage tab"
// @Param target path string true "Plugin id or batch-export service name"
// @Param config_id query int false "Saved batch export to edit"
// @Success 200 {object} creationResponse "Form descriptor"
// @Failure 404 {object} map[string]string "Unknown stage, entry, or stage/target mismatch"
// @Router /pipeline/{stage}/new/{target} [get]
func (h *Handlers) GetNodeCreation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stage, ok := stages.ResolveStage(vars["stage"])
	if !ok {
		writeError(w, errors.NotFoundError("stage "+vars["stage"]))
		return
	}

	target := stages.ClassifyTarget(vars["target"])
	if target.IsNone() {
		writeError(w, errors.NotFoundError("creation target"))
		return
	}

	entry, err := h.selector.Find(r.Context(), stage, target, auth.Impersonated(r))
	if err != nil {
		writeError(w, err)
		return
	}

	response := creationResponse{Stage: stage, Variant: entry.Kind(), Entry: entry}

	if _, isService := entry.Service(); isService {
		configID, _ := strconv.Atoi(r.URL.Query().Get("config_id"))
		configurator, err := batchexports.NewConfigurator(h.exports, h.services, stage, target, configID)
		if err != nil {
			writeError(w, err)
			return
		}
		definition := configurator.Definition()
		draft := configurator.Draft()
		response.State = configurator.State()
		response.IsNew = configurator.IsNew()
		response.Service = &definition
		response.Draft = &draft
	}

	writeJSON(w, http.StatusOK, response)
}

// GetBreadcrumbs returns the breadcrumb trail for a pipeline screen.
// @Summary Breadcrumbs for a pipeline screen
// @Tags pipeline
// @Produce json
// @Security SessionAuth
// @Param stage path string true "Plural stage tab"
// @Param plugin_id query int false "Plugin being created"
// @Param service query string false "Batch-export service being created"
// @Success 200 {array} navigation.Breadcrumb "Exactly three entries"
// @Router /pipeline/{stage}/breadcrumbs [get]
func (h *Handlers) GetBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	// Resolution failure falls through to an invalid stage on purpose: the
	// trail is total and renders "Unknown" for unrecognized tabs.
	stage, _ := stages.ResolveStage(mux.Vars(r)["stage"])
	pluginID, _ := strconv.Atoi(r.URL.Query().Get("plugin_id"))
	service := r.URL.Query().Get("service")

	writeJSON(w, http.StatusOK, navigation.Breadcrumbs(stage, pluginID, service))
}
