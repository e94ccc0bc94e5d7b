// Package catalog assembles the per-stage catalogs of installable pipeline
// nodes and orders them for the node-creation table.
package catalog

import (
	"encoding/json"
	"fmt"

	"pipeline-console/internal/plugins"
)

// EntryKind discriminates the two catalog entry variants.
type EntryKind string

const (
	// KindPlugin is a plugin entry backed by plugin metadata.
	KindPlugin EntryKind = "plugin"
	// KindService is a batch-export service entry.
	KindService EntryKind = "batch_export"
)

// Entry is one installable item offered for creation at a stage: either a
// plugin or a batch-export service, never both and never neither. Entries
// are only constructed through NewPluginEntry and NewServiceEntry, which
// keeps the invalid states unrepresentable.
type Entry struct {
	kind    EntryKind
	plugin  plugins.Plugin
	service string
}

// NewPluginEntry creates a plugin catalog entry.
func NewPluginEntry(p plugins.Plugin) Entry {
	return Entry{kind: KindPlugin, plugin: p}
}

// NewServiceEntry creates a batch-export service catalog entry. The entry's
// name is the service name itself.
func NewServiceEntry(service string) Entry {
	return Entry{kind: KindService, service: service}
}

// Kind returns the entry's variant.
func (e Entry) Kind() EntryKind {
	return e.kind
}

// Plugin returns the plugin metadata and whether the entry is a plugin.
func (e Entry) Plugin() (plugins.Plugin, bool) {
	return e.plugin, e.kind == KindPlugin
}

// Service returns the service name and whether the entry is a service.
func (e Entry) Service() (string, bool) {
	return e.service, e.kind == KindService
}

// ID returns the entry identifier used in creation URLs: the decimal plugin
// id for plugins, the service name for services.
func (e Entry) ID() string {
	switch e.kind {
	case KindPlugin:
		return fmt.Sprintf("%d", e.plugin.ID)
	case KindService:
		return e.service
	}
	return ""
}

// Name returns the entry's display name.
func (e Entry) Name() string {
	switch e.kind {
	case KindPlugin:
		return e.plugin.Name
	case KindService:
		return e.service
	}
	return ""
}

// Description returns the entry's display description. Service entries get
// a generated one.
func (e Entry) Description() string {
	switch e.kind {
	case KindPlugin:
		return e.plugin.Description
	case KindService:
		return fmt.Sprintf("%s export", e.service)
	}
	return ""
}

// entryJSON is the wire shape of a catalog entry row.
type entryJSON struct {
	ID          string          `json:"id"`
	Kind        EntryKind       `json:"kind"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Plugin      *plugins.Plugin `json:"plugin,omitempty"`
}

// MarshalJSON renders the entry as a selector table row.
func (e Entry) MarshalJSON() ([]byte, error) {
	row := entryJSON{
		ID:          e.ID(),
		Kind:        e.kind,
		Name:        e.Name(),
		Description: e.Description(),
	}
	if p, ok := e.Plugin(); ok {
		row.Plugin = &p
	}
	return json.Marshal(row)
}
