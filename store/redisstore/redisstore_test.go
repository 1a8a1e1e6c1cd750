package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/justapithecus/brrr/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)

	s, err := New(Config{URL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisSetNewValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	k := types.ValueKey("m1")

	if err := s.SetNewValue(ctx, k, []byte("a")); err != nil {
		t.Fatalf("first SetNewValue: %v", err)
	}
	if err := s.SetNewValue(ctx, k, []byte("b")); err != types.ErrCompareMismatch {
		t.Fatalf("expected ErrCompareMismatch, got %v", err)
	}
}

func TestRedisCompareAndSetAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	k := types.PendingReturnsKey("m1")

	if err := s.Set(ctx, k, []byte("v0")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.CompareAndSet(ctx, k, []byte("v1"), []byte("wrong")); err != types.ErrCompareMismatch {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if err := s.CompareAndSet(ctx, k, []byte("v1"), []byte("v0")); err != nil {
		t.Fatalf("CompareAndSet: %v", err)
	}
	if err := s.CompareAndDelete(ctx, k, []byte("v1")); err != nil {
		t.Fatalf("CompareAndDelete: %v", err)
	}
	if ok, _ := s.Has(ctx, k); ok {
		t.Fatalf("expected key to be gone")
	}
}

func TestRedisIncr(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	k := types.CounterKey("root-1")

	for i := int64(1); i <= 3; i++ {
		got, err := s.Incr(ctx, k)
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if got != i {
			t.Fatalf("expected %d, got %d", i, got)
		}
	}
}

func TestRedisGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), types.ValueKey("missing"))
	if err != types.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
