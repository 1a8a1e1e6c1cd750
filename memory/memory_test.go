package memory

import (
	"context"
	"testing"

	"github.com/justapithecus/brrr/codec"
	"github.com/justapithecus/brrr/store/memstore"
	"github.com/justapithecus/brrr/types"
)

func newTestMemory() *Memory {
	return New(memstore.New(), codec.NewJSON())
}

func TestSetCallAndGetCallBytes(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()

	call, err := m.MakeCall("foo", float64(3))
	if err != nil {
		t.Fatalf("MakeCall: %v", err)
	}
	if err := m.SetCall(ctx, call); err != nil {
		t.Fatalf("SetCall: %v", err)
	}

	taskName, payload, err := m.GetCallBytes(ctx, call.MemoKey)
	if err != nil {
		t.Fatalf("GetCallBytes: %v", err)
	}
	if taskName != "foo" {
		t.Fatalf("expected foo, got %q", taskName)
	}
	if len(payload) == 0 {
		t.Fatalf("expected non-empty payload")
	}
}

func TestSetValueDuplicateIsKeyAlreadyExists(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()

	if err := m.SetValue(ctx, "m1", []byte("1")); err != nil {
		t.Fatalf("first SetValue: %v", err)
	}
	if err := m.SetValue(ctx, "m1", []byte("2")); err != types.ErrKeyAlreadyExists {
		t.Fatalf("expected ErrKeyAlreadyExists, got %v", err)
	}
}

func TestGetValueNotFound(t *testing.T) {
	m := newTestMemory()
	_, err := m.GetValueByKey(context.Background(), "missing")
	if err != types.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddPendingReturnSchedulesOnlyOnce(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()
	scheduleCount := 0
	schedule := func(context.Context) error { scheduleCount++; return nil }

	complete, err := m.AddPendingReturn(ctx, "child", "parent-1", schedule)
	if err != nil {
		t.Fatalf("AddPendingReturn: %v", err)
	}
	if complete {
		t.Fatalf("child should not be complete yet")
	}

	complete, err = m.AddPendingReturn(ctx, "child", "parent-2", schedule)
	if err != nil {
		t.Fatalf("AddPendingReturn: %v", err)
	}
	if complete {
		t.Fatalf("child should not be complete yet")
	}

	if scheduleCount != 1 {
		t.Fatalf("expected child to be scheduled exactly once, got %d", scheduleCount)
	}
}

func TestAddPendingReturnIdempotentForSameParent(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()
	schedule := func(context.Context) error { return nil }

	if _, err := m.AddPendingReturn(ctx, "child", "parent-1", schedule); err != nil {
		t.Fatalf("AddPendingReturn: %v", err)
	}
	if _, err := m.AddPendingReturn(ctx, "child", "parent-1", schedule); err != nil {
		t.Fatalf("AddPendingReturn: %v", err)
	}

	raw, err := m.store.Get(ctx, types.PendingReturnsKey("child"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	record, err := decodePendingReturns(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(record.Returns) != 1 {
		t.Fatalf("expected exactly one parent, got %v", record.Returns)
	}
}

func TestAddPendingReturnStrandedWaiterIsWokenDirectly(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()

	// Simulate the child having already completed and removed its
	// pending_returns record before the parent registers.
	if err := m.SetValue(ctx, "child", []byte("done")); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	scheduled := false
	schedule := func(context.Context) error { scheduled = true; return nil }

	complete, err := m.AddPendingReturn(ctx, "child", "late-parent", schedule)
	if err != nil {
		t.Fatalf("AddPendingReturn: %v", err)
	}
	if !complete {
		t.Fatalf("expected childAlreadyComplete=true")
	}
	if scheduled {
		t.Fatalf("should not have scheduled an already-complete child")
	}
}

func TestWithPendingReturnsRemoveNoWaiters(t *testing.T) {
	m := newTestMemory()
	calls := 0
	err := m.WithPendingReturnsRemove(context.Background(), "child", func(context.Context, string) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("WithPendingReturnsRemove: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no handler calls, got %d", calls)
	}
}

func TestWithPendingReturnsRemoveWakesAllOnce(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()
	schedule := func(context.Context) error { return nil }

	for _, p := range []string{"p1", "p2", "p3"} {
		if _, err := m.AddPendingReturn(ctx, "child", p, schedule); err != nil {
			t.Fatalf("AddPendingReturn: %v", err)
		}
	}

	var woken []string
	err := m.WithPendingReturnsRemove(ctx, "child", func(_ context.Context, parent string) error {
		woken = append(woken, parent)
		return nil
	})
	if err != nil {
		t.Fatalf("WithPendingReturnsRemove: %v", err)
	}
	if len(woken) != 3 {
		t.Fatalf("expected 3 parents woken, got %v", woken)
	}

	if ok, _ := m.store.Has(ctx, types.PendingReturnsKey("child")); ok {
		t.Fatalf("expected pending_returns record to be removed")
	}
}
