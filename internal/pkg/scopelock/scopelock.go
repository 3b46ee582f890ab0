// Package scopelock provides named mutual exclusion for consolidation scopes.
//
// Scheduler passes for different scopes run concurrently, but two writers must
// never touch the same scope's forming group at once: the pass itself,
// a retried pass, and an operator force-dispatch all contend for the same
// single-writer slot. A Registry hands out one mutex per scope name so all of
// them serialize on it.
package scopelock

import "sync"

// Registry maps scope names to mutexes. The zero value is not usable; create
// a Registry with NewRegistry. Safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRegistry creates an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

func (r *Registry) get(scope string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[scope]
	if !ok {
		l = &sync.Mutex{}
		r.locks[scope] = l
	}
	return l
}

// Lock blocks until the scope's lock is acquired.
// Used by operator-triggered operations that must not be skipped.
func (r *Registry) Lock(scope string) {
	r.get(scope).Lock()
}

// TryLock acquires the scope's lock without blocking. Returns false when
// another pass already holds it; the caller is expected to skip its work and
// rely on the next cadence tick.
func (r *Registry) TryLock(scope string) bool {
	return r.get(scope).TryLock()
}

// Unlock releases the scope's lock.
func (r *Registry) Unlock(scope string) {
	r.get(scope).Unlock()
}
