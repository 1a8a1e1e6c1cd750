// Package memory wraps a store.Store with the Codec to expose three
// logical namespaces — call, value, and pending_returns — plus the
// bounded compare-and-swap retry loop (WithCas) those namespaces rely
// on for correct concurrent mutation.
package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/justapithecus/brrr/codec"
	"github.com/justapithecus/brrr/store"
	"github.com/justapithecus/brrr/types"
)

// ColdStore overflows value payloads too large to keep inline. It is
// satisfied by *s3coldstore.ColdStore; memory depends only on this
// narrow interface to avoid importing the AWS SDK when cold storage
// is unused.
type ColdStore interface {
	Put(ctx context.Context, memoKey string, v []byte) (ref string, err error)
	Get(ctx context.Context, ref string) ([]byte, error)
}

// Memory is the typed façade over a Store used by the scheduler and
// worker. It owns no state of its own beyond the Store and Codec it
// wraps, so it is cheap to construct and safe to share.
type Memory struct {
	store         store.Store
	codec         codec.Codec
	casRetryLimit int
	cold          ColdStore
	coldThreshold int
	isColdRef     func([]byte) bool
}

// Option configures a Memory at construction time.
type Option func(*Memory)

// WithCASRetryLimit overrides CASRetryLimit for this Memory's WithCas
// loop.
func WithCASRetryLimit(n int) Option {
	return func(m *Memory) { m.casRetryLimit = n }
}

// WithColdStore overflows value payloads larger than thresholdBytes
// into cold, storing an opaque reference in the primary Store in
// their place. isRef must report whether a raw value-namespace
// payload is such a reference, matching cold's own Put encoding
// (s3coldstore.IsRef).
func WithColdStore(cold ColdStore, thresholdBytes int, isRef func([]byte) bool) Option {
	return func(m *Memory) {
		m.cold = cold
		m.coldThreshold = thresholdBytes
		m.isColdRef = isRef
	}
}

// New builds a Memory façade over s using codec c to derive memo keys
// and serialize call arguments and return values.
func New(s store.Store, c codec.Codec, opts ...Option) *Memory {
	m := &Memory{store: s, codec: c}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MakeCall delegates to the Codec to build a Call for (taskName, args).
func (m *Memory) MakeCall(taskName string, args any) (types.Call, error) {
	return m.codec.CreateCall(taskName, args)
}

// HasCall reports whether a call record exists for call.MemoKey.
func (m *Memory) HasCall(ctx context.Context, call types.Call) (bool, error) {
	ok, err := m.store.Has(ctx, types.CallKey(call.MemoKey))
	if err != nil {
		return false, fmt.Errorf("memory: hasCall: %w", err)
	}
	return ok, nil
}

// SetCall idempotently persists call's record. The record is a pure
// function of MemoKey, so rewrites are no-ops and SetCall always
// overwrites unconditionally rather than guarding with a CAS.
func (m *Memory) SetCall(ctx context.Context, call types.Call) error {
	argBytes, err := m.codec.EncodeCall(call)
	if err != nil {
		return fmt.Errorf("memory: encode call: %w", err)
	}

	record := callRecord{TaskName: call.TaskName, CallBytes: argBytes}
	encoded, err := encodeCallRecord(record)
	if err != nil {
		return fmt.Errorf("memory: encode call record: %w", err)
	}

	if err := m.store.Set(ctx, types.CallKey(call.MemoKey), encoded); err != nil {
		return fmt.Errorf("memory: setCall: %w", err)
	}
	return nil
}

// GetCallBytes loads and splits the stored call record for memoKey,
// returning the task name and the opaque, codec-encoded argument
// payload.
func (m *Memory) GetCallBytes(ctx context.Context, memoKey string) (taskName string, payload []byte, err error) {
	raw, err := m.store.Get(ctx, types.CallKey(memoKey))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", nil, types.ErrNotFound
		}
		return "", nil, fmt.Errorf("memory: getCallBytes: %w", err)
	}

	record, err := decodeCallRecord(raw)
	if err != nil {
		return "", nil, fmt.Errorf("memory: decode call record: %w", err)
	}
	return record.TaskName, record.CallBytes, nil
}

// GetValue reads the cached return bytes for call, or types.ErrNotFound.
func (m *Memory) GetValue(ctx context.Context, call types.Call) ([]byte, error) {
	return m.GetValueByKey(ctx, call.MemoKey)
}

// GetValueByKey is GetValue addressed directly by memo key, used by
// the worker and scheduler where only the key (not the full Call) is
// in hand.
func (m *Memory) GetValueByKey(ctx context.Context, memoKey string) ([]byte, error) {
	v, err := m.store.Get(ctx, types.ValueKey(memoKey))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("memory: getValue: %w", err)
	}

	if m.cold != nil && m.isColdRef(v) {
		v, err = m.cold.Get(ctx, string(v))
		if err != nil {
			return nil, fmt.Errorf("memory: getValue: cold dereference: %w", err)
		}
	}
	return v, nil
}

// IncrSpawnCounter atomically increments and returns the enqueue
// counter for rootID, used to enforce the per-root spawn limit.
func (m *Memory) IncrSpawnCounter(ctx context.Context, rootID string) (int64, error) {
	n, err := m.store.Incr(ctx, types.CounterKey(rootID))
	if err != nil {
		return 0, fmt.Errorf("memory: incr spawn counter: %w", err)
	}
	return n, nil
}

// SpawnCount reports rootID's current enqueue counter without
// incrementing it, for read-only tooling such as inspect.
func (m *Memory) SpawnCount(ctx context.Context, rootID string) (int64, error) {
	n, err := m.store.PeekCounter(ctx, types.CounterKey(rootID))
	if err != nil {
		return 0, fmt.Errorf("memory: spawn count: %w", err)
	}
	return n, nil
}

// SetValue stores the return bytes for memoKey iff absent. On a
// concurrent duplicate (two workers ran the same call) it returns
// types.ErrKeyAlreadyExists; the caller swallows this as the expected
// outcome of the race.
func (m *Memory) SetValue(ctx context.Context, memoKey string, value []byte) error {
	stored := value
	if m.cold != nil && m.coldThreshold > 0 && len(value) > m.coldThreshold {
		ref, err := m.cold.Put(ctx, memoKey, value)
		if err != nil {
			return fmt.Errorf("memory: setValue: cold overflow: %w", err)
		}
		stored = []byte(ref)
	}

	err := m.store.SetNewValue(ctx, types.ValueKey(memoKey), stored)
	if errors.Is(err, types.ErrCompareMismatch) {
		return types.ErrKeyAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("memory: setValue: %w", err)
	}
	return nil
}
