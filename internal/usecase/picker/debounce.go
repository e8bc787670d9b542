package picker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to a call replaced by a newer one for the same
// key before its wait elapsed.
var ErrSuperseded = errors.New("superseded by a newer search")

// Debouncer delays calls per key; only the last call within the wait window
// runs.
type Debouncer struct {
	wait time.Duration

	mu  sync.Mutex
	gen map[string]uint64
	pending map[string]chan struct{}
}

func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{
		wait:    wait,
		gen:     make(map[string]uint64),
		pending: make(map[string]chan struct{}),
	}
}

// Do waits out the window and runs fn unless a newer call for key arrives
// first.
func (d *Debouncer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	gen, cancelled := d.enter(key)

	timer := time.NewTimer(d.wait)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-cancelled:
		return ErrSuperseded
	case <-ctx.Done():
		d.leave(key, gen)
		return ctx.Err()
	}

	if !d.leave(key, gen) {
		return ErrSuperseded
	}
	return fn(ctx)
}

// Cancel supersedes any pending call for key. Keys without one are left
// untouched.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch, ok := d.pending[key]
	if !ok {
		return
	}
	close(ch)
	delete(d.pending, key)
	delete(d.gen, key)
}

func (d *Debouncer) enter(key string) (uint64, <-chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ch, ok := d.pending[key]; ok {
		close(ch)
	}
	d.gen[key]++
	ch := make(chan struct{})
	d.pending[key] = ch
	return d.gen[key], ch
}

// leave reports whether gen is still the latest call for key.
func (d *Debouncer) leave(key string, gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen[key] != gen {
		return false
	}
	delete(d.pending, key)
	delete(d.gen, key)
	return true
}
