package catalog

import (
	"context"
	"sort"
	"sync"

	"pipeline-console/internal/plugins"
	"pipeline-console/internal/stages"
)

// Snapshot is one read of a stage's plugin catalog. Loading is distinct
// from an empty Entries map: a loading snapshot means the fetch is still
// outstanding and callers should render a loading indicator.
type Snapshot struct {
	Entries map[int]plugins.Plugin `json:"entries"`
	Loading bool                   `json:"loading"`
}

// Provider supplies the plugin catalog for a single stage. Implementations
// are read models; callers never mutate the returned map.
type Provider interface {
	Entries(ctx context.Context) (Snapshot, error)
}

// StoreProvider reads a stage's plugins directly from the plugin store.
// Store reads are synchronous, so its snapshots are never loading.
type StoreProvider struct {
	store *plugins.Store
	stage stages.Stage
}

// NewStoreProvider creates a provider for one stage over the plugin store.
func NewStoreProvider(store *plugins.Store, stage stages.Stage) *StoreProvider {
	return &StoreProvider{store: store, stage: stage}
}

// Entries returns the stage's enabled plugins.
func (p *StoreProvider) Entries(ctx context.Context) (Snapshot, error) {
	entries, err := p.store.ByStage(p.stage)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Entries: entries}, nil
}

// AsyncProvider wraps a provider whose first fetch may be slow. Until the
// initial fetch completes it reports a loading snapshot instead of
// blocking the request; later reads serve the inner provider directly.
type AsyncProvider struct {
	inner Provider

	mu      sync.Mutex
	started bool
	ready   bool
}

// NewAsyncProvider wraps inner with loading semantics.
func NewAsyncProvider(inner Provider) *AsyncProvider {
	return &AsyncProvider{inner: inner}
}

// Entries returns a loading snapshot while the initial fetch is
// outstanding, kicking the fetch off on the first call.
func (p *AsyncProvider) Entries(ctx context.Context) (Snapshot, error) {
	p.mu.Lock()
	if p.ready {
		p.mu.Unlock()
		return p.inner.Entries(ctx)
	}
	if !p.started {
		p.started = true
		go p.warm()
	}
	p.mu.Unlock()
	return Snapshot{Entries: map[int]plugins.Plugin{}, Loading: true}, nil
}

func (p *AsyncProvider) warm() {
	// Warm with a background context: the fetch outlives the request that
	// triggered it.
	_, _ = p.inner.Entries(context.Background())
	p.mu.Lock()
	p.ready = true
	p.mu.Unlock()
}

// sortedPlugins flattens a catalog map into a slice ordered by plugin id,
// so the selector table is stable regardless of map iteration order.
func sortedPlugins(entries map[int]plugins.Plugin) []plugins.Plugin {
	result := make([]plugins.Plugin, 0, len(entries))
	for _, p := range entries {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
