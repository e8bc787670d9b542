package crud

import (
	"context"
	"errors"
	"sync"

	"example.com/brewery-admin/internal/domain/page"
)

var (
	// ErrBusy is returned when a form submission is already running.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrInFlight is returned when the row already has a mutation running.
	ErrInFlight = errors.New("a change to this record is already in progress")
)

// Row is any listed entity.
type Row interface {
	RowID() int64
}

type Mode int

const (
	ModeIdle Mode = iota
	ModeViewing
	ModeEditing
	ModeCreating
)

func (m Mode) String() string {
	switch m {
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	case ModeCreating:
		return "creating"
	default:
		return "idle"
	}
}

// Modal is the single modal slot of a list page. ID is zero unless the mode
// targets a record.
type Modal struct {
	Mode Mode
	ID   int64
}

func (m Modal) Open() bool { return m.Mode != ModeIdle }

// RollbackObserver is told whenever an optimistic change is undone.
type RollbackObserver interface {
	ObserveRollback(entity string)
}

// Controller holds one list page's client state for one browser session:
// the rows last shown, the modal slot, the submit flag and the optimistic
// copies of rows with a mutation in flight.
type Controller[T Row] struct {
	mu         sync.Mutex
	entity     string
	observer   RollbackObserver
	rows       []T
	pagination page.Pagination
	modal      Modal
	loading    bool
	inflight   map[int64]T
}

func NewController[T Row](entity string, observer RollbackObserver) *Controller[T] {
	return &Controller[T]{
		entity:   entity,
		observer: observer,
		inflight: make(map[int64]T),
	}
}

func (c *Controller[T]) Modal() Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// OpenView, OpenEdit and OpenCreate replace whatever modal was open.
func (c *Controller[T]) OpenView(id int64) { c.setModal(Modal{Mode: ModeViewing, ID: id}) }

func (c *Controller[T]) OpenEdit(id int64) { c.setModal(Modal{Mode: ModeEditing, ID: id}) }

func (c *Controller[T]) OpenCreate() { c.setModal(Modal{Mode: ModeCreating}) }

func (c *Controller[T]) Close() { c.setModal(Modal{}) }

func (c *Controller[T]) setModal(m Modal) {
	c.mu.Lock()
	c.modal = m
	c.mu.Unlock()
}

func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Submit runs a create or edit. Success closes the modal; failure leaves it
// open so the form can be corrected.
func (c *Controller[T]) Submit(ctx context.Context, fn func(ctx context.Context) error) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.loading = true
	c.mu.Unlock()

	var err error
	defer func() {
		c.mu.Lock()
		c.loading = false
		if err == nil {
			c.modal = Modal{}
		}
		c.mu.Unlock()
	}()

	err = fn(ctx)
	return err
}

// Mutate applies an optimistic change to a held row, runs call, and either
// keeps the backend's answer or restores the row as it was. The returned row
// is what the list now holds for id.
func (c *Controller[T]) Mutate(ctx context.Context, id int64, apply func(T) T, call func(ctx context.Context) (*T, error)) (T, error) {
	c.mu.Lock()
	if _, busy := c.inflight[id]; busy {
		c.mu.Unlock()
		var zero T
		return zero, ErrInFlight
	}
	idx := c.indexLocked(id)
	var snapshot T
	held := idx >= 0
	if held {
		snapshot = c.rows[idx]
		optimistic := apply(snapshot)
		c.rows[idx] = optimistic
		c.inflight[id] = optimistic
	} else {
		var zero T
		c.inflight[id] = zero
	}
	c.mu.Unlock()

	res, err := call(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	optimistic := c.inflight[id]
	delete(c.inflight, id)

	if err != nil {
		if held {
			c.replaceLocked(id, snapshot)
			if c.observer != nil {
				c.observer.ObserveRollback(c.entity)
			}
		}
		return snapshot, err
	}
	if res != nil {
		c.replaceLocked(id, *res)
		return *res, nil
	}
	return optimistic, nil
}

// Confirm runs call first and only updates the held row after success.
func (c *Controller[T]) Confirm(ctx context.Context, id int64, call func(ctx context.Context) (*T, error)) (*T, error) {
	res, err := call(ctx)
	if err != nil {
		return nil, err
	}
	if res != nil {
		c.mu.Lock()
		c.replaceLocked(id, *res)
		c.mu.Unlock()
	}
	return res, nil
}

// Load replaces the held rows with a fresh page. Rows with a mutation in
// flight keep their optimistic copy until the mutation settles.
func (c *Controller[T]) Load(p page.Page[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]T, len(p.Items))
	for i, r := range p.Items {
		if opt, ok := c.inflight[r.RowID()]; ok && opt.RowID() == r.RowID() {
			rows[i] = opt
			continue
		}
		rows[i] = r
	}
	c.rows = rows
	c.pagination = p.Pagination
}

func (c *Controller[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.rows))
	copy(out, c.rows)
	return out
}

func (c *Controller[T]) Pagination() page.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

func (c *Controller[T]) Row(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexLocked(id); idx >= 0 {
		return c.rows[idx], true
	}
	var zero T
	return zero, false
}

// Pending reports whether id has a mutation in flight.
func (c *Controller[T]) Pending(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[id]
	return ok
}

func (c *Controller[T]) indexLocked(id int64) int {
	for i, r := range c.rows {
		if r.RowID() == id {
			return i
		}
	}
	return -1
}

func (c *Controller[T]) replaceLocked(id int64, row T) {
	if idx := c.indexLocked(id); idx >= 0 {
		c.rows[idx] = row
	}
}
