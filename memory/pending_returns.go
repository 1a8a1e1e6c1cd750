package memory

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/justapithecus/brrr/types"
)

// ScheduleJobFunc enqueues the child call (and increments its root's
// spawn counter) the first time a parent registers interest in it.
type ScheduleJobFunc func(ctx context.Context) error

// AddPendingReturn registers parentKey as a waiter on childKey,
// scheduling the child's job the first time any waiter registers.
// childAlreadyComplete reports a stranded-waiter edge case: if
// childKey's value already exists — because the child completed and
// removed its pending_returns record in the window around this
// registration — no completion wakeup will ever fire for this parent,
// and the caller must re-enqueue it directly instead of waiting on
// one.
func (m *Memory) AddPendingReturn(ctx context.Context, childKey, parentKey string, scheduleJob ScheduleJobFunc) (childAlreadyComplete bool, err error) {
	// Fast path: if the child is already done, skip registering a
	// waiter (and skip re-scheduling the child) entirely.
	if _, valErr := m.GetValueByKey(ctx, childKey); valErr == nil {
		return true, nil
	}

	err = m.WithCas(ctx, func(ctx context.Context) error {
		key := types.PendingReturnsKey(childKey)
		raw, getErr := m.store.Get(ctx, key)

		var record pendingReturnsRecord
		var observed []byte
		shouldStore := false
		freshlyCreated := false

		switch {
		case errors.Is(getErr, types.ErrNotFound):
			record = pendingReturnsRecord{Returns: []string{parentKey}}
			encoded, encErr := encodePendingReturns(record)
			if encErr != nil {
				return encErr
			}
			if setErr := m.store.SetNewValue(ctx, key, encoded); setErr != nil {
				// Another waiter raced us into creating the record; retry
				// the whole transaction against what's there now.
				return setErr
			}
			observed = encoded
			freshlyCreated = true

		case getErr != nil:
			return getErr

		default:
			decoded, decErr := decodePendingReturns(raw)
			if decErr != nil {
				return decErr
			}
			record = decoded
			observed = raw
			if !record.hasParent(parentKey) {
				record = record.withParent(parentKey)
				shouldStore = true
			}
		}

		if record.ScheduledAt == "" {
			if jobErr := scheduleJob(ctx); jobErr != nil {
				return jobErr
			}
			record.ScheduledAt = strconv.FormatInt(time.Now().UnixNano(), 10)
			shouldStore = true
		}

		if shouldStore {
			encoded, encErr := encodePendingReturns(record)
			if encErr != nil {
				return encErr
			}
			if casErr := m.store.CompareAndSet(ctx, key, encoded, observed); casErr != nil {
				return casErr
			}
			observed = encoded
		}

		if freshlyCreated {
			if _, valErr := m.GetValueByKey(ctx, childKey); valErr == nil {
				// The child completed in the window between our Get and
				// our write; its worker already drained whatever waiters
				// existed before ours and will never look at this record
				// again. Remove the stray record (best-effort — a
				// concurrent compare-and-delete winning is fine too) and
				// report so the caller wakes parentKey directly.
				_ = m.store.CompareAndDelete(ctx, key, observed)
				childAlreadyComplete = true
			}
		}
		return nil
	})
	return childAlreadyComplete, err
}

// PendingReturnsHandler is invoked once per newly-drained parent
// waiter, with the full message body ("rootID/parentMemoKey") that
// was registered via AddPendingReturn.
type PendingReturnsHandler func(ctx context.Context, parentMessage string) error

// WithPendingReturnsRemove atomically hands off childKey's waiter set
// to handle and deletes the pending_returns record. This is the
// fan-in point: the worker that completes a child is the sole
// waker of its parents, and each parent is woken at most once per
// completion, even across CAS retries — the already-handled set is
// carried across retries so a CompareMismatch only re-runs handle on
// waiters that arrived since the last attempt.
func (m *Memory) WithPendingReturnsRemove(ctx context.Context, childKey string, handle PendingReturnsHandler) error {
	handled := make(map[string]struct{})

	return m.WithCas(ctx, func(ctx context.Context) error {
		key := types.PendingReturnsKey(childKey)
		raw, getErr := m.store.Get(ctx, key)
		if errors.Is(getErr, types.ErrNotFound) {
			// No waiters were ever registered for this child; nothing to
			// wake.
			return nil
		}
		if getErr != nil {
			return getErr
		}

		record, decErr := decodePendingReturns(raw)
		if decErr != nil {
			return decErr
		}

		var fresh []string
		for _, parent := range record.Returns {
			if _, done := handled[parent]; done {
				continue
			}
			fresh = append(fresh, parent)
		}

		for _, parent := range fresh {
			if err := handle(ctx, parent); err != nil {
				return err
			}
			handled[parent] = struct{}{}
		}

		if err := m.store.CompareAndDelete(ctx, key, raw); err != nil {
			// A new waiter registered between our Get and our delete.
			// Retry: the next attempt re-reads, skips everyone in
			// `handled`, and only wakes the newcomer.
			return err
		}
		return nil
	})
}
