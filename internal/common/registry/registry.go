// Package registry provides a generic, thread-safe registry for definition
// instances keyed by type name.
//
// The console uses it to hold batch-export service definitions, but it can
// be specialized for any type that can name itself.
package registry

import (
	"fmt"
	"sync"

	"pipeline-console/internal/common/errors"
)

// Definition is the interface registry entries must implement.
type Definition interface {
	// Name returns the identifier this entry is registered under.
	Name() string
}

// Registry is a thread-safe map of named definitions.
type Registry[T Definition] struct {
	entries map[string]T
	order   []string
	mu      sync.RWMutex
}

// New creates an empty registry for definitions of type T.
func New[T Definition]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Register adds a definition under its own name. Registering the same name
// twice replaces the earlier entry but keeps its position.
func (r *Registry[T]) Register(entry T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := entry.Name()
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = entry
}

// Get retrieves a definition by name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	entry, exists := r.entries[name]
	r.mu.RUnlock()

	if !exists {
		var zero T
		return zero, errors.NotFoundError(fmt.Sprintf("definition %q", name))
	}
	return entry, nil
}

// Names returns all registered names in registration order. The returned
// slice is a copy and safe to modify.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// IsRegistered checks whether a name is registered.
func (r *Registry[T]) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.entries[name]
	return exists
}

// Count returns the number of registered definitions.
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
