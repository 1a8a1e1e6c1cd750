package memory

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/justapithecus/brrr/codec"
	"github.com/justapithecus/brrr/store/memstore"
	"github.com/justapithecus/brrr/types"
)

const fakeColdRefPrefix = "fakecold://"

// fakeColdStore is an in-process stand-in for s3coldstore.ColdStore.
type fakeColdStore struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	nextID int
}

func newFakeColdStore() *fakeColdStore {
	return &fakeColdStore{blobs: make(map[string][]byte)}
}

func (f *fakeColdStore) Put(_ context.Context, memoKey string, v []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ref := fmt.Sprintf("%s%s-%d", fakeColdRefPrefix, memoKey, f.nextID)
	f.blobs[ref] = append([]byte(nil), v...)
	return ref, nil
}

func (f *fakeColdStore) Get(_ context.Context, ref string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.blobs[ref]
	if !ok {
		return nil, fmt.Errorf("fakeColdStore: no blob for %s", ref)
	}
	return v, nil
}

func (f *fakeColdStore) puts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextID
}

func isFakeColdRef(raw []byte) bool {
	return bytes.HasPrefix(raw, []byte(fakeColdRefPrefix))
}

func TestSetValueUnderThresholdStaysInline(t *testing.T) {
	cold := newFakeColdStore()
	m := New(memstore.New(), codec.NewJSON(), WithColdStore(cold, 1024, isFakeColdRef))
	ctx := context.Background()

	if err := m.SetValue(ctx, "small", []byte("tiny")); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if cold.puts() != 0 {
		t.Fatalf("expected no cold puts for a small value, got %d", cold.puts())
	}

	got, err := m.GetValueByKey(ctx, "small")
	if err != nil {
		t.Fatalf("GetValueByKey: %v", err)
	}
	if string(got) != "tiny" {
		t.Fatalf("expected %q, got %q", "tiny", got)
	}
}

func TestSetValueOverThresholdOverflowsToColdStore(t *testing.T) {
	cold := newFakeColdStore()
	m := New(memstore.New(), codec.NewJSON(), WithColdStore(cold, 4, isFakeColdRef))
	ctx := context.Background()

	large := []byte("this value is bigger than the threshold")
	if err := m.SetValue(ctx, "big", large); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if cold.puts() != 1 {
		t.Fatalf("expected exactly one cold put, got %d", cold.puts())
	}

	raw, err := m.store.Get(ctx, types.ValueKey("big"))
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	if !isFakeColdRef(raw) {
		t.Fatalf("expected the primary store to hold a cold reference, got %q", raw)
	}

	got, err := m.GetValueByKey(ctx, "big")
	if err != nil {
		t.Fatalf("GetValueByKey: %v", err)
	}
	if !bytes.Equal(got, large) {
		t.Fatalf("GetValueByKey returned %q, want %q", got, large)
	}
}
