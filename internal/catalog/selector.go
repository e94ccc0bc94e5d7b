package catalog

import (
	"context"
	"fmt"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/stages"
)

// ServiceSource lists the batch-export service names offered for creation,
// in their fixed display order. The impersonated flag gates services that
// are only shown to impersonated staff sessions.
type ServiceSource interface {
	ServiceNames(impersonated bool) []string
}

// Selector assembles the node-creation table for a stage.
type Selector struct {
	providers map[stages.Stage]Provider
	services  ServiceSource
}

// NewSelector creates a selector over one provider per stage and the
// batch-export service source.
func NewSelector(providers map[stages.Stage]Provider, services ServiceSource) *Selector {
	return &Selector{providers: providers, services: services}
}

// Options returns the ordered catalog of installable nodes for a stage.
//
// For the destination stage the sequence is every batch-export service
// entry followed by every plugin entry; services lead by fixed display
// order, not by name. Transformation and site-app stages list plugin
// entries only. The returned loading flag is true while the stage's
// catalog fetch is still outstanding, which callers must keep distinct
// from a loaded-but-empty catalog.
//
// A stage outside the supported set yields an unavailable error: the
// selector renders "creation unavailable" rather than an empty table.
func (s *Selector) Options(ctx context.Context, stage stages.Stage, impersonated bool) ([]Entry, bool, error) {
	provider, ok := s.providers[stage]
	if !ok {
		return nil, false, errors.UnavailableError(
			fmt.Sprintf("node creation is not available for stage %q", stage))
	}

	snapshot, err := provider.Entries(ctx)
	if err != nil {
		return nil, false, err
	}
	if snapshot.Loading {
		return nil, true, nil
	}

	var options []Entry
	if stage == stages.StageDestination {
		for _, name := range s.services.ServiceNames(impersonated) {
			options = append(options, NewServiceEntry(name))
		}
	}
	for _, p := range sortedPlugins(snapshot.Entries) {
		options = append(options, NewPluginEntry(p))
	}
	return options, false, nil
}

// Find resolves a classified target against a stage's catalog, returning
// the matching entry. Both the target's syntactic kind and its presence in
// the catalog are checked here, so a mismatched or unknown target surfaces
// as a typed not-found error naming the missing object.
func (s *Selector) Find(ctx context.Context, stage stages.Stage, target stages.ResolvedTarget, impersonated bool) (Entry, error) {
	if service, ok := target.Service(); ok {
		// Batch-export services exist only under the destination stage.
		if stage != stages.StageDestination {
			return Entry{}, errors.NotFoundError(
				fmt.Sprintf("batch export destination %q under stage %q", service, stage.Tab()))
		}
		for _, name := range s.services.ServiceNames(impersonated) {
			if name == service {
				return NewServiceEntry(name), nil
			}
		}
		return Entry{}, errors.NotFoundError(fmt.Sprintf("batch export destination %q", service))
	}

	if id, ok := target.PluginID(); ok {
		provider, exists := s.providers[stage]
		if !exists {
			return Entry{}, errors.UnavailableError(
				fmt.Sprintf("node creation is not available for stage %q", stage))
		}
		snapshot, err := provider.Entries(ctx)
		if err != nil {
			return Entry{}, err
		}
		if p, found := snapshot.Entries[id]; found {
			return NewPluginEntry(p), nil
		}
		return Entry{}, errors.NotFoundError(fmt.Sprintf("plugin %d", id))
	}

	return Entry{}, errors.NotFoundError("creation target")
}
