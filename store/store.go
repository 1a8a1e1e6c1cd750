// Package store defines the Store contract: a remote, possibly-
// contended key-value store with unconditional get/set/delete,
// conditional set-if-absent / compare-and-set / compare-and-delete,
// and an atomic counter increment. This package specifies the
// contract and ships a process-local reference adapter
// (store/memstore) plus a Redis-backed one (store/redisstore).
package store

import (
	"context"

	"github.com/justapithecus/brrr/types"
)

// Store must be linearizable per key for the conditional operations.
// Cross-key transactions are not required and not used by the engine.
type Store interface {
	// Has reports whether k is present.
	Has(ctx context.Context, k types.Key) (bool, error)

	// Get returns the bytes stored at k, or types.ErrNotFound.
	Get(ctx context.Context, k types.Key) ([]byte, error)

	// Set unconditionally stores v at k.
	Set(ctx context.Context, k types.Key, v []byte) error

	// Delete unconditionally removes k.
	Delete(ctx context.Context, k types.Key) error

	// SetNewValue stores v at k iff k is currently absent, else returns
	// types.ErrCompareMismatch.
	SetNewValue(ctx context.Context, k types.Key, v []byte) error

	// CompareAndSet stores newValue at k iff the current value equals
	// expected byte-for-byte, else returns types.ErrCompareMismatch.
	CompareAndSet(ctx context.Context, k types.Key, newValue, expected []byte) error

	// CompareAndDelete removes k iff the current value equals expected
	// byte-for-byte, else returns types.ErrCompareMismatch.
	CompareAndDelete(ctx context.Context, k types.Key, expected []byte) error

	// Incr atomically increments the counter at k and returns the
	// post-increment value. Counter keys occupy a logical namespace
	// disjoint from call/value/pending_returns.
	Incr(ctx context.Context, k types.Key) (int64, error)

	// PeekCounter returns the current value of the counter at k
	// without incrementing it, or 0 if k has never been incremented.
	// Read-only tooling (inspect) uses this; the engine itself never
	// needs to peek without also incrementing.
	PeekCounter(ctx context.Context, k types.Key) (int64, error)
}
