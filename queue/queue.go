// Package queue defines the Queue contract: a point-to-point channel
// of opaque UTF-8 message bodies, used to carry "rootID/memoKey"
// scheduling directives between the scheduler and workers.
package queue

import "context"

// Info is observability-only queue state.
type Info struct {
	// Length is the approximate number of messages currently enqueued.
	Length int64
}

// Queue is a multi-producer, multi-consumer message channel.
// Delivery is at-least-once; reorders are tolerated. A getMessage
// delivers each enqueued body to exactly one consumer under normal
// operation, though duplicates are tolerated by the memoization layer.
type Queue interface {
	// PutMessage enqueues body.
	PutMessage(ctx context.Context, body string) error

	// GetMessage blocks for an implementation-chosen bounded wait and
	// returns the next message body. Returns types.ErrQueueEmpty if the
	// wait elapses with nothing available, types.ErrQueueClosed once the
	// queue has been durably closed.
	GetMessage(ctx context.Context) (string, error)

	// GetInfo reports observability-only queue state.
	GetInfo(ctx context.Context) (Info, error)

	// Close durably signals that no further messages will be produced.
	// Pending and future GetMessage calls unblock with types.ErrQueueClosed.
	Close(ctx context.Context) error
}
