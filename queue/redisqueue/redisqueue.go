// Package redisqueue implements queue.Queue on top of a Redis list,
// using RPUSH to enqueue and a blocking BLPOP to receive.
package redisqueue

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/justapithecus/brrr/queue"
	"github.com/justapithecus/brrr/types"
)

var _ queue.Queue = (*Queue)(nil)

// DefaultPollTimeout is the default BLPOP bound.
const DefaultPollTimeout = 20 * time.Second

// closedMarker is a sentinel list entry appended by Close so that any
// consumer blocked in BLPOP wakes with a clear closed signal instead
// of an ambiguous empty timeout.
const closedMarker = "\x00brrr:closed\x00"

// Config configures the Redis-backed Queue.
type Config struct {
	// URL is the Redis connection URL (required).
	URL string
	// Key is the Redis list key used as the queue (required).
	Key string
	// PollTimeout bounds each BLPOP call. Zero uses DefaultPollTimeout.
	PollTimeout time.Duration
}

// Queue is a Redis-list-backed queue.Queue.
type Queue struct {
	client      *goredis.Client
	key         string
	pollTimeout time.Duration
}

// New creates a Redis-backed Queue from the given config.
func New(cfg Config) (*Queue, error) {
	if cfg.URL == "" {
		return nil, errors.New("redisqueue: URL is required")
	}
	if cfg.Key == "" {
		return nil, errors.New("redisqueue: Key is required")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redisqueue: invalid URL: %w", err)
	}

	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}

	return &Queue{
		client:      goredis.NewClient(opts),
		key:         cfg.Key,
		pollTimeout: pollTimeout,
	}, nil
}

// NewFromClient wraps an already-constructed Redis client, primarily
// for tests against miniredis.
func NewFromClient(client *goredis.Client, key string, pollTimeout time.Duration) *Queue {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &Queue{client: client, key: key, pollTimeout: pollTimeout}
}

// Close pushes a closed marker so in-flight and later BLPOP callers
// observe closure. It does not close the underlying Redis client.
func (q *Queue) Close(ctx context.Context) error {
	if err := q.client.RPush(ctx, q.key, closedMarker).Err(); err != nil {
		return fmt.Errorf("redisqueue: close: %w", err)
	}
	return nil
}

func (q *Queue) PutMessage(ctx context.Context, body string) error {
	if err := q.client.RPush(ctx, q.key, body).Err(); err != nil {
		return fmt.Errorf("redisqueue: put: %w", err)
	}
	return nil
}

func (q *Queue) GetMessage(ctx context.Context) (string, error) {
	result, err := q.client.BLPop(ctx, q.pollTimeout, q.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", types.ErrQueueEmpty
	}
	if err != nil {
		return "", fmt.Errorf("redisqueue: get: %w", err)
	}

	// BLPop returns [key, value].
	body := result[1]
	if body == closedMarker {
		// Re-push the marker so other blocked consumers also observe
		// closure, then report it to this caller.
		_ = q.client.RPush(ctx, q.key, closedMarker).Err()
		return "", types.ErrQueueClosed
	}
	return body, nil
}

func (q *Queue) GetInfo(ctx context.Context) (queue.Info, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return queue.Info{}, fmt.Errorf("redisqueue: info: %w", err)
	}
	return queue.Info{Length: n}, nil
}
