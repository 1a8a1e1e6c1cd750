// Package memqueue is a process-local reference implementation of
// queue.Queue, backed by a buffered channel. Suitable for tests and
// the single-process demo.
package memqueue

import (
	"context"
	"sync"
	"time"

	"github.com/justapithecus/brrr/queue"
	"github.com/justapithecus/brrr/types"
)

var _ queue.Queue = (*Queue)(nil)

// DefaultPollTimeout is the default bounded wait for GetMessage.
const DefaultPollTimeout = 20 * time.Second

// Queue is an in-memory queue.Queue backed by a buffered channel.
type Queue struct {
	ch          chan string
	pollTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

// New creates an in-memory Queue with the given buffer capacity and
// poll timeout. A zero pollTimeout uses DefaultPollTimeout.
func New(capacity int, pollTimeout time.Duration) *Queue {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &Queue{
		ch:          make(chan string, capacity),
		pollTimeout: pollTimeout,
	}
}

func (q *Queue) PutMessage(_ context.Context, body string) error {
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	if closed {
		return types.ErrQueueClosed
	}

	q.ch <- body
	return nil
}

func (q *Queue) GetMessage(ctx context.Context) (string, error) {
	timer := time.NewTimer(q.pollTimeout)
	defer timer.Stop()

	select {
	case body, ok := <-q.ch:
		if !ok {
			return "", types.ErrQueueClosed
		}
		return body, nil
	case <-timer.C:
		return "", types.ErrQueueEmpty
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (q *Queue) GetInfo(_ context.Context) (queue.Info, error) {
	return queue.Info{Length: int64(len(q.ch))}, nil
}

// Close marks the queue closed. Any message already buffered is still
// delivered to a GetMessage caller before ErrQueueClosed is returned;
// closing the channel lets drained receivers observe closure without
// an extra poll cycle.
func (q *Queue) Close(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.ch)
	return nil
}
