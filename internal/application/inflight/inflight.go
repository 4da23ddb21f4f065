// Package inflight guards against duplicate concurrent submissions. A
// browser gets at most one in-flight run of a given action; a second
// submission arriving while the first is still running is refused.
package inflight

import "sync"

// Registry tracks which (browser, action) pairs currently have a
// submission running. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu     sync.Mutex
	active map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[string]bool)}
}

// Acquire marks the action as running for the browser. It returns false
// if a run is already in flight, in which case the caller must not
// proceed and must not call Release.
// PRE: browserID and action are non-empty
// POST: true means the caller owns the slot until Release
func (r *Registry) Acquire(browserID, action string) bool {
	key := browserID + ":" + action
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active[key] {
		return false
	}
	r.active[key] = true
	return true
}

// Release frees the slot taken by a successful Acquire.
// PRE: the caller holds the slot for (browserID, action)
// POST: the next Acquire for the pair succeeds
func (r *Registry) Release(browserID, action string) {
	key := browserID + ":" + action
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, key)
}
