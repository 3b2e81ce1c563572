package newsgrab

import (
	"sort"
	"sync"
	"time"
)

var _ AdapterResolver = (*Registry)(nil)

// Registry maps source identifiers to their adapter and eligibility window.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
}

type registryEntry struct {
	source  *Source
	adapter Adapter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Register adds the adapter for a source.
// Returns ECONFLICT if the source is already registered, since adapters
// are immutable after registration.
func (r *Registry) Register(source *Source, adapter Adapter) error {
	if err := source.Validate(); err != nil {
		return err
	}
	if adapter == nil {
		return Errorf(EINVALID, "source %q has no adapter", source.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[source.ID]; ok {
		return Errorf(ECONFLICT, "source %q already registered", source.ID)
	}
	r.entries[source.ID] = registryEntry{source: source, adapter: adapter}
	return nil
}

// Resolve returns the adapter for the source if it is eligible at the given time.
func (r *Registry) Resolve(sourceID string, at time.Time) (Adapter, error) {
	r.mu.RLock()
	entry, ok := r.entries[sourceID]
	r.mu.RUnlock()

	if !ok {
		return nil, Errorf(ENOTFOUND, "source %q not registered", sourceID)
	}
	if !entry.source.Eligible(at) {
		return nil, Errorf(EINVALID, "adapter for source %q not eligible at %s", sourceID, at.Format(time.RFC3339))
	}
	return entry.adapter, nil
}

// Source returns the registered source by ID.
func (r *Registry) Source(sourceID string) (*Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[sourceID]
	return entry.source, ok
}

// Sources returns all registered sources ordered by ID.
func (r *Registry) Sources() []*Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]*Source, 0, len(r.entries))
	for _, e := range r.entries {
		sources = append(sources, e.source)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].ID < sources[j].ID })
	return sources
}
