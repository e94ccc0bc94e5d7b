// Package stages defines the closed set of pipeline stages and the
// resolution of raw route segments into typed stage and target values.
//
// URL tabs carry the plural form ("destinations") while the rest of the
// system speaks singular. The two directions are kept as explicit fixed
// tables rather than a pluralization rule; the mapping is asymmetric enough
// that inference would be fragile.
package stages

// Stage is one phase of a pipeline for which nodes can be installed.
type Stage string

const (
	StageTransformation Stage = "transformation"
	StageDestination    Stage = "destination"
	StageSiteApp        Stage = "site_app"
)

// stageByTab maps the plural URL tab segment to its stage.
var stageByTab = map[string]Stage{
	"transformations": StageTransformation,
	"destinations":    StageDestination,
	"site-apps":       StageSiteApp,
}

// tabByStage is the inverse table, used for breadcrumb and URL construction.
var tabByStage = map[Stage]string{
	StageTransformation: "transformations",
	StageDestination:    "destinations",
	StageSiteApp:        "site-apps",
}

// labelByStage holds the human tab labels shown in breadcrumbs.
var labelByStage = map[Stage]string{
	StageTransformation: "Transformations",
	StageDestination:    "Destinations",
	StageSiteApp:        "Site apps",
}

// ResolveStage maps a raw plural path segment to its stage. The second
// return is false when the segment matches no known stage; callers render a
// not-found state rather than failing.
func ResolveStage(segment string) (Stage, bool) {
	stage, ok := stageByTab[segment]
	return stage, ok
}

// Tab returns the plural URL tab segment for a stage.
func (s Stage) Tab() string {
	return tabByStage[s]
}

// Label returns the display label for a stage's tab, or "Unknown" for a
// stage outside the closed set.
func (s Stage) Label() string {
	if label, ok := labelByStage[s]; ok {
		return label
	}
	return "Unknown"
}

// Valid reports whether s is one of the closed set of stages.
func (s Stage) Valid() bool {
	_, ok := tabByStage[s]
	return ok
}

// All returns the closed set of stages in display order.
func All() []Stage {
	return []Stage{StageTransformation, StageDestination, StageSiteApp}
}
