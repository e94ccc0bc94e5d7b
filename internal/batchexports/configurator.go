package batchexports

import (
	"fmt"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/stages"
)

// State is the configurator lifecycle state.
type State string

const (
	// StateLoading means the saved configuration is still being fetched or
	// defaults are still being established.
	StateLoading State = "loading"
	// StateNew means the form edits a fresh draft with no saved baseline.
	StateNew State = "new"
	// StateEditing means the form edits an existing saved configuration.
	StateEditing State = "editing"
)

// Configurator owns one batch-export form edit session: the mutable draft,
// the saved baseline behind reset, and the submit lifecycle. It is bound
// to a single service and discarded when the session ends; nothing here is
// shared between sessions.
type Configurator struct {
	store      *Store
	definition ServiceDefinition

	state    State
	isNew    bool
	draft    Config
	baseline Config
}

// NewConfigurator opens an edit session for the (stage, target) pair. The
// pair is re-validated here rather than trusted from the routing layer:
// only a destination-stage service target can produce a batch-export form,
// and anything else returns a typed not-found error.
//
// A zero configID starts a fresh draft from the service's defaults; a
// non-zero one loads the saved configuration as the editing baseline.
func NewConfigurator(store *Store, reg *Registry, stage stages.Stage, target stages.ResolvedTarget, configID int) (*Configurator, error) {
	service, ok := target.Service()
	if !ok {
		return nil, errors.NotFoundError("batch export destination")
	}
	if stage != stages.StageDestination {
		return nil, errors.NotFoundError(
			fmt.Sprintf("batch export destination %q under stage %q", service, stage.Tab()))
	}

	definition, err := reg.Get(service)
	if err != nil {
		return nil, errors.NotFoundError(fmt.Sprintf("batch export destination %q", service))
	}

	c := &Configurator{
		store:      store,
		definition: definition,
		state:      StateLoading,
	}
	if err := c.load(configID); err != nil {
		return nil, err
	}
	return c, nil
}

// load leaves the loading state once the baseline is established: service
// defaults for a new draft, the saved configuration when editing.
func (c *Configurator) load(configID int) error {
	if configID == 0 {
		c.isNew = true
		c.baseline = c.definition.defaults()
		c.draft = c.baseline.clone()
		c.state = StateNew
		return nil
	}

	saved, err := c.store.Get(configID)
	if err != nil {
		return err
	}
	if saved.Service != c.definition.ServiceName {
		return errors.NotFoundError(
			fmt.Sprintf("%s batch export %d", c.definition.ServiceName, configID))
	}
	c.baseline = saved
	c.draft = saved.clone()
	c.state = StateEditing
	return nil
}

// State returns the configurator's lifecycle state.
func (c *Configurator) State() State {
	return c.state
}

// IsNew reports whether the session creates a new configuration.
func (c *Configurator) IsNew() bool {
	return c.isNew
}

// Definition returns the service definition driving the form.
func (c *Configurator) Definition() ServiceDefinition {
	return c.definition
}

// Draft returns a copy of the current draft.
func (c *Configurator) Draft() Config {
	return c.draft.clone()
}

// Submit validates and persists the given draft atomically: either the
// whole configuration is saved and becomes the new baseline, or a field
// validation error is returned and the draft is retained unchanged so the
// user can correct and resubmit.
func (c *Configurator) Submit(draft Config) (Config, error) {
	draft.Service = c.definition.ServiceName
	if fields := c.definition.validate(draft); fields != nil {
		c.draft = draft.clone()
		return Config{}, errors.FieldValidationError(fields)
	}

	var saved Config
	var err error
	if c.isNew {
		saved, err = c.store.Create(draft)
	} else {
		saved, err = c.store.Update(c.baseline.ID, draft)
	}
	if err != nil {
		return Config{}, err
	}

	c.baseline = saved
	c.draft = saved.clone()
	c.isNew = false
	c.state = StateEditing
	return saved, nil
}

// Reset restores the draft to the last known-good state: the service
// defaults for a new session, the saved configuration when editing. It is
// idempotent and never fails.
func (c *Configurator) Reset() Config {
	c.draft = c.baseline.clone()
	return c.draft.clone()
}
