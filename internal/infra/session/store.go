package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("session value not found")

// Store is a key-scoped persistence capability for one browser session.
// Writes are last-write-wins; there is no locking across requests.
type Store interface {
	Get(ctx context.Context, sid, key string) ([]byte, error)
	Set(ctx context.Context, sid, key string, value []byte) error
	Delete(ctx context.Context, sid, key string) error
	Clear(ctx context.Context, sid string) error
}

// Load decodes the JSON value stored under key. Absent and malformed values
// are both reported as a miss; only store failures return an error.
func Load[T any](ctx context.Context, s Store, sid, key string) (T, bool, error) {
	var zero T
	raw, err := s.Get(ctx, sid, key)
	if errors.Is(err, ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("session get %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, nil
	}
	return v, true, nil
}

// Save JSON-encodes v under key.
func Save[T any](ctx context.Context, s Store, sid, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("session encode %s: %w", key, err)
	}
	if err := s.Set(ctx, sid, key, raw); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

// Take loads and deletes a value, used for one-shot flash messages.
func Take[T any](ctx context.Context, s Store, sid, key string) (T, bool, error) {
	v, ok, err := Load[T](ctx, s, sid, key)
	if err != nil || !ok {
		return v, ok, err
	}
	if err := s.Delete(ctx, sid, key); err != nil {
		return v, ok, fmt.Errorf("session delete %s: %w", key, err)
	}
	return v, true, nil
}
