package providers

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Entry pairs an adapter with the per-call timeout configured for it.
// Providers differ in typical latency, so the deadline is a per-model
// setting rather than a global one.
type Entry struct {
	Adapter Adapter
	Timeout time.Duration
}

// Registry maps model ids to their adapters.
// Thread-safe for concurrent access during comparisons.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register associates a model id with an adapter and its timeout.
// Re-registering an id is a programming error.
func (r *Registry) Register(modelID string, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if modelID == "" {
		return fmt.Errorf("model id cannot be empty")
	}
	if entry.Adapter == nil {
		return fmt.Errorf("model %q: adapter cannot be nil", modelID)
	}
	if entry.Timeout <= 0 {
		return fmt.Errorf("model %q: timeout must be positive", modelID)
	}
	if _, exists := r.entries[modelID]; exists {
		return fmt.Errorf("model %q already registered", modelID)
	}

	r.entries[modelID] = entry
	return nil
}

// Get retrieves the entry for a model id.
func (r *Registry) Get(modelID string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[modelID]
	return entry, ok
}

// Resolve looks up every id and returns the entries in input order.
// It is all-or-nothing: a single unknown id fails the whole lookup so
// the caller can reject the request before any outbound call is made.
func (r *Registry) Resolve(modelIDs []string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(modelIDs))
	for _, id := range modelIDs {
		entry, ok := r.entries[id]
		if !ok {
			return nil, fmt.Errorf("unknown model: %s", id)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// IDs returns all registered model ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
