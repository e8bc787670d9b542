package picker

import (
	"context"
	"strings"

	"example.com/brewery-admin/internal/infra/session"
)

// Searcher runs debounced name searches for one kind of entity.
type Searcher[T any] struct {
	debouncer *Debouncer
	search    func(ctx context.Context, term string) ([]T, error)
}

func NewSearcher[T any](d *Debouncer, search func(ctx context.Context, term string) ([]T, error)) *Searcher[T] {
	return &Searcher[T]{debouncer: d, search: search}
}

// Search returns the matches for term. A blank term returns no results
// without calling the backend and abandons any pending search for key.
func (s *Searcher[T]) Search(ctx context.Context, key, term string) ([]T, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		s.debouncer.Cancel(key)
		return []T{}, nil
	}

	var out []T
	err := s.debouncer.Do(ctx, key, func(ctx context.Context) error {
		var err error
		out, err = s.search(ctx, term)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Selection is the entity last chosen in a picker.
type Selection struct {
	ID   int64  `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// Label is what the picker input shows for the selection.
func (s Selection) Label() string {
	if s.Code == "" {
		return s.Name
	}
	return s.Code + " - " + s.Name
}

// Memory remembers picker selections per session so a page can show the
// chosen name without resolving the id again.
type Memory struct {
	store session.Store
}

func NewMemory(store session.Store) *Memory {
	return &Memory{store: store}
}

func (m *Memory) Remember(ctx context.Context, sid, key string, sel Selection) error {
	return session.Save(ctx, m.store, sid, key, sel)
}

// Recall returns the remembered selection. Missing, unreadable and
// id-less values are a miss.
func (m *Memory) Recall(ctx context.Context, sid, key string) (Selection, bool, error) {
	sel, ok, err := session.Load[Selection](ctx, m.store, sid, key)
	if err != nil || !ok {
		return Selection{}, false, err
	}
	if sel.ID <= 0 {
		return Selection{}, false, nil
	}
	return sel, true, nil
}

// RecallID is Recall restricted to the selection with the given id.
func (m *Memory) RecallID(ctx context.Context, sid, key string, id int64) (Selection, bool, error) {
	sel, ok, err := m.Recall(ctx, sid, key)
	if err != nil || !ok || sel.ID != id {
		return Selection{}, false, err
	}
	return sel, true, nil
}

func (m *Memory) Forget(ctx context.Context, sid, key string) error {
	return m.store.Delete(ctx, sid, key)
}

// RememberRelatedMaterial stores the material last used for a movement.
func (m *Memory) RememberRelatedMaterial(ctx context.Context, sid string, id int64) error {
	return session.Save(ctx, m.store, sid, session.KeyRelatedMaterial, id)
}

func (m *Memory) RelatedMaterial(ctx context.Context, sid string) (int64, bool, error) {
	id, ok, err := session.Load[int64](ctx, m.store, sid, session.KeyRelatedMaterial)
	if err != nil || !ok || id <= 0 {
		return 0, false, err
	}
	return id, true, nil
}
