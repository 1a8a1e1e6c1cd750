package memqueue

import (
	"context"
	"testing"
	"time"

	"github.com/justapithecus/brrr/types"
)

func TestPutGetRoundTrip(t *testing.T) {
	q := New(4, 50*time.Millisecond)
	ctx := context.Background()

	if err := q.PutMessage(ctx, "root1/memo1"); err != nil {
		t.Fatalf("PutMessage: %v", err)
	}

	got, err := q.GetMessage(ctx)
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got != "root1/memo1" {
		t.Fatalf("expected root1/memo1, got %q", got)
	}
}

func TestGetMessageEmptyTimesOut(t *testing.T) {
	q := New(1, 20*time.Millisecond)
	_, err := q.GetMessage(context.Background())
	if err != types.ErrQueueEmpty {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}
}

func TestCloseBeforeGetMessage(t *testing.T) {
	q := New(1, time.Second)
	if err := q.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	start := time.Now()
	_, err := q.GetMessage(context.Background())
	if err != types.ErrQueueClosed {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("expected immediate return on closed empty queue, took %v", elapsed)
	}
}

func TestCloseDrainsBufferedMessages(t *testing.T) {
	q := New(2, time.Second)
	ctx := context.Background()

	if err := q.PutMessage(ctx, "a"); err != nil {
		t.Fatalf("PutMessage: %v", err)
	}
	if err := q.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := q.GetMessage(ctx)
	if err != nil {
		t.Fatalf("expected buffered message before closed signal, got err %v", err)
	}
	if got != "a" {
		t.Fatalf("expected a, got %q", got)
	}

	if _, err := q.GetMessage(ctx); err != types.ErrQueueClosed {
		t.Fatalf("expected ErrQueueClosed after drain, got %v", err)
	}
}

func TestPutMessageAfterCloseFails(t *testing.T) {
	q := New(1, time.Second)
	ctx := context.Background()
	_ = q.Close(ctx)

	if err := q.PutMessage(ctx, "x"); err != types.ErrQueueClosed {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}
