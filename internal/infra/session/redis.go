package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis used by RedisStore.
type RedisClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisStore keeps one hash per session so every tab of the same browser
// session, on any dashboard replica, sees the same values.
type RedisStore struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client RedisClient, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sid, key string) ([]byte, error) {
	raw, err := s.client.HGet(ctx, s.hashKey(sid), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.client.Expire(ctx, s.hashKey(sid), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("refresh session ttl: %w", err)
	}
	return raw, nil
}

func (s *RedisStore) Set(ctx context.Context, sid, key string, value []byte) error {
	hk := s.hashKey(sid)
	if err := s.client.HSet(ctx, hk, key, value).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, hk, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sid, key string) error {
	return s.client.HDel(ctx, s.hashKey(sid), key).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.hashKey(sid)).Err()
}

func (s *RedisStore) hashKey(sid string) string {
	return s.prefix + sid
}
