// Package redisstore implements store.Store on top of Redis, using
// Lua scripts (EVAL) to make the conditional primitives
// (SetNewValue, CompareAndSet, CompareAndDelete) atomic, and native
// INCR for the counter namespace.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/justapithecus/brrr/store"
	"github.com/justapithecus/brrr/types"
)

var _ store.Store = (*Store)(nil)

// Config configures the Redis-backed Store.
type Config struct {
	// URL is the Redis connection URL (required).
	// Format: redis://[:password@]host:port[/db]
	URL string
}

// Store is a Redis-backed store.Store implementation.
type Store struct {
	client *goredis.Client
}

// New creates a Redis-backed Store from the given config.
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, errors.New("redisstore: URL is required")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redisstore: invalid URL: %w", err)
	}

	return &Store{client: goredis.NewClient(opts)}, nil
}

// NewFromClient wraps an already-constructed Redis client, primarily
// for tests against miniredis.
func NewFromClient(client *goredis.Client) *Store {
	return &Store{client: client}
}

// Close releases the underlying Redis connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Has(ctx context.Context, k types.Key) (bool, error) {
	n, err := s.client.Exists(ctx, k.String()).Result()
	if err != nil {
		return false, fmt.Errorf("redisstore: has %s: %w", k, err)
	}
	return n > 0, nil
}

func (s *Store) Get(ctx context.Context, k types.Key) ([]byte, error) {
	v, err := s.client.Get(ctx, k.String()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get %s: %w", k, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, k types.Key, v []byte) error {
	if err := s.client.Set(ctx, k.String(), v, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: set %s: %w", k, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, k types.Key) error {
	if err := s.client.Del(ctx, k.String()).Err(); err != nil {
		return fmt.Errorf("redisstore: delete %s: %w", k, err)
	}
	return nil
}

// setNewValueScript sets key to value only if it does not already
// exist, returning 1 on success and 0 when the key was present.
var setNewValueScript = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1])
return 1
`)

func (s *Store) SetNewValue(ctx context.Context, k types.Key, v []byte) error {
	ok, err := setNewValueScript.Run(ctx, s.client, []string{k.String()}, v).Int()
	if err != nil {
		return fmt.Errorf("redisstore: setNewValue %s: %w", k, err)
	}
	if ok == 0 {
		return types.ErrCompareMismatch
	}
	return nil
}

// compareAndSetScript replaces key's value with ARGV[1] only if its
// current value equals ARGV[2].
var compareAndSetScript = goredis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current == ARGV[2] then
	redis.call("SET", KEYS[1], ARGV[1])
	return 1
end
return 0
`)

func (s *Store) CompareAndSet(ctx context.Context, k types.Key, newValue, expected []byte) error {
	ok, err := compareAndSetScript.Run(ctx, s.client, []string{k.String()}, newValue, expected).Int()
	if err != nil {
		return fmt.Errorf("redisstore: compareAndSet %s: %w", k, err)
	}
	if ok == 0 {
		return types.ErrCompareMismatch
	}
	return nil
}

// compareAndDeleteScript removes key only if its current value equals
// ARGV[1].
var compareAndDeleteScript = goredis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

func (s *Store) CompareAndDelete(ctx context.Context, k types.Key, expected []byte) error {
	ok, err := compareAndDeleteScript.Run(ctx, s.client, []string{k.String()}, expected).Int()
	if err != nil {
		return fmt.Errorf("redisstore: compareAndDelete %s: %w", k, err)
	}
	if ok == 0 {
		return types.ErrCompareMismatch
	}
	return nil
}

func (s *Store) Incr(ctx context.Context, k types.Key) (int64, error) {
	n, err := s.client.Incr(ctx, k.String()).Result()
	if err != nil {
		return 0, fmt.Errorf("redisstore: incr %s: %w", k, err)
	}
	return n, nil
}

func (s *Store) PeekCounter(ctx context.Context, k types.Key) (int64, error) {
	n, err := s.client.Get(ctx, k.String()).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redisstore: peek counter %s: %w", k, err)
	}
	return n, nil
}
