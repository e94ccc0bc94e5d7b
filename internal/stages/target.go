package stages

import (
	"regexp"
	"strconv"
)

// TargetKind discriminates the three shapes a route target can take.
type TargetKind int

const (
	// TargetNone means no target segment was present: browse mode.
	TargetNone TargetKind = iota
	// TargetPlugin means the segment was a decimal plugin identifier.
	TargetPlugin
	// TargetService means the segment was a batch-export service name.
	TargetService
)

var pluginIDPattern = regexp.MustCompile(`^\d+$`)

// ResolvedTarget is a route target classified by ClassifyTarget. It is the
// only target value the node configurator accepts, so an unclassified raw
// segment can never reach a form variant.
type ResolvedTarget struct {
	kind     TargetKind
	pluginID int
	service  string
}

// ClassifyTarget classifies a raw target path segment. A segment consisting
// entirely of decimal digits is a plugin identifier, any other non-empty
// segment is a batch-export service name, and an empty segment is browse
// mode. The classification is purely syntactic: it never checks that the
// identifier exists in any catalog.
func ClassifyTarget(segment string) ResolvedTarget {
	if segment == "" {
		return ResolvedTarget{kind: TargetNone}
	}
	if pluginIDPattern.MatchString(segment) {
		if id, err := strconv.Atoi(segment); err == nil {
			return ResolvedTarget{kind: TargetPlugin, pluginID: id}
		}
		// Digits that overflow int are treated as an opaque service name;
		// the catalog lookup downstream reports them missing.
	}
	return ResolvedTarget{kind: TargetService, service: segment}
}

// Kind returns the target's classification.
func (t ResolvedTarget) Kind() TargetKind {
	return t.kind
}

// PluginID returns the plugin identifier and whether the target is one.
func (t ResolvedTarget) PluginID() (int, bool) {
	return t.pluginID, t.kind == TargetPlugin
}

// Service returns the batch-export service name and whether the target is
// one.
func (t ResolvedTarget) Service() (string, bool) {
	return t.service, t.kind == TargetService
}

// IsNone reports whether no target was present (browse mode).
func (t ResolvedTarget) IsNone() bool {
	return t.kind == TargetNone
}
