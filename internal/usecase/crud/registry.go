package crud

import (
	"sync"
	"time"
)

type registryEntry[T Row] struct {
	ctrl     *Controller[T]
	lastSeen time.Time
}

// Registry hands out one Controller per browser session.
type Registry[T Row] struct {
	mu       sync.Mutex
	entity   string
	observer RollbackObserver
	entries  map[string]*registryEntry[T]
	now      func() time.Time
}

func NewRegistry[T Row](entity string, observer RollbackObserver) *Registry[T] {
	return &Registry[T]{
		entity:   entity,
		observer: observer,
		entries:  make(map[string]*registryEntry[T]),
		now:      time.Now,
	}
}

func (r *Registry[T]) Entity() string { return r.entity }

// For returns the session's controller, creating it on first use.
func (r *Registry[T]) For(sid string) *Controller[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sid]
	if !ok {
		e = &registryEntry[T]{ctrl: NewController[T](r.entity, r.observer)}
		r.entries[sid] = e
	}
	e.lastSeen = r.now()
	return e.ctrl
}

func (r *Registry[T]) Forget(sid string) {
	r.mu.Lock()
	delete(r.entries, sid)
	r.mu.Unlock()
}

// Sweep drops controllers idle for longer than idle and reports how many.
func (r *Registry[T]) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for sid, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, sid)
			n++
		}
	}
	return n
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
