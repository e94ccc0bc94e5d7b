// Package navigation builds breadcrumb trails and creation URLs for the
// pipeline console's node-creation flow.
package navigation

import (
	"fmt"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/stages"
)

// Breadcrumb is one entry in the console's breadcrumb trail.
type Breadcrumb struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

// Breadcrumbs builds the three-entry trail for a node-creation screen:
// the pipeline root, the stage tab, and a leaf describing the current
// target. It is total: every combination of stage (including one outside
// the closed set), plugin id, and batch-export service yields exactly
// three entries.
//
// A zero pluginID and empty service mean browse mode ("Options"); a
// present pluginID wins over a present service, matching the order the
// route resolver classifies targets in.
func Breadcrumbs(stage stages.Stage, pluginID int, service string) []Breadcrumb {
	trail := make([]Breadcrumb, 0, 3)
	trail = append(trail, Breadcrumb{Name: "Data pipeline", Path: "/pipeline"})

	if stage.Valid() {
		trail = append(trail, Breadcrumb{
			Name: stage.Label(),
			Path: "/pipeline/" + stage.Tab(),
		})
	} else {
		trail = append(trail, Breadcrumb{Name: "Unknown"})
	}

	switch {
	case pluginID > 0:
		trail = append(trail, Breadcrumb{Name: "New"})
	case service != "":
		trail = append(trail, Breadcrumb{Name: fmt.Sprintf("New %s destination", service)})
	default:
		trail = append(trail, Breadcrumb{Name: "Options"})
	}
	return trail
}

// CreationPath builds the route for creating a node from a catalog entry.
// An unknown stage or empty entry id is a navigation failure reported to
// the caller rather than a silently dropped intent.
func CreationPath(stage stages.Stage, entryID string) (string, error) {
	if !stage.Valid() {
		return "", errors.NotFoundError(fmt.Sprintf("stage %q", stage))
	}
	if entryID == "" {
		return "", errors.ValidationError("creation target id must not be empty")
	}
	return fmt.Sprintf("/pipeline/%s/new/%s", stage.Tab(), entryID), nil
}

// Navigator turns a selected catalog entry into a route transition. The
// selector fires the intent and reports the outcome; it never retries.
type Navigator interface {
	Navigate(stage stages.Stage, entryID string) (string, error)
}

// RouteNavigator is the default navigator: it resolves the creation path
// for the route layer to transition to.
type RouteNavigator struct{}

// Navigate returns the creation path for the selection, or the reason the
// transition cannot happen.
func (RouteNavigator) Navigate(stage stages.Stage, entryID string) (string, error) {
	return CreationPath(stage, entryID)
}
