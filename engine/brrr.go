// Package engine implements the scheduler (Brrr) and worker loop that
// turn registered Task bodies into a durable, memoized, recursive
// execution graph over a Memory façade.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/justapithecus/brrr/codec"
	"github.com/justapithecus/brrr/log"
	"github.com/justapithecus/brrr/memory"
	"github.com/justapithecus/brrr/metrics"
	"github.com/justapithecus/brrr/queue"
	"github.com/justapithecus/brrr/store"
	"github.com/justapithecus/brrr/types"
)

// DefaultSpawnLimit bounds the number of queue enqueues permitted
// within one root workflow.
const DefaultSpawnLimit = 500

// Brrr is the scheduler: a task registry, the Memory façade, and the
// Queue used to schedule and resume recursive task executions.
type Brrr struct {
	memory        *memory.Memory
	codec         codec.Codec
	queue         queue.Queue
	log           *log.Logger
	metrics       *metrics.Collector
	spawnLimit    int
	casRetryLimit int
	coldStore     memory.ColdStore
	coldThreshold int
	coldIsRef     func([]byte) bool

	mu            sync.Mutex
	tasks         map[string]registeredTask
	workerRunning atomic.Bool
}

// Option configures a Brrr at construction time.
type Option func(*Brrr)

// WithSpawnLimit overrides DefaultSpawnLimit.
func WithSpawnLimit(n int) Option {
	return func(b *Brrr) { b.spawnLimit = n }
}

// WithCASRetryLimit overrides memory.CASRetryLimit for this engine's
// Memory façade.
func WithCASRetryLimit(n int) Option {
	return func(b *Brrr) { b.casRetryLimit = n }
}

// WithCodec overrides the default canonical-JSON codec.
func WithCodec(c codec.Codec) Option {
	return func(b *Brrr) { b.codec = c }
}

// WithLogger overrides the default stderr JSON logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Brrr) { b.log = l }
}

// WithMetrics attaches a metrics collector. A nil Collector (the zero
// value of *metrics.Collector) is safe to pass — every increment
// method is nil-receiver safe.
func WithMetrics(m *metrics.Collector) Option {
	return func(b *Brrr) { b.metrics = m }
}

// WithColdStore overflows return values larger than thresholdBytes
// into cold, storing an opaque reference in the primary Store in
// their place. isRef reports whether a raw value-namespace payload is
// such a reference; pass s3coldstore.IsRef.
func WithColdStore(cold memory.ColdStore, thresholdBytes int, isRef func([]byte) bool) Option {
	return func(b *Brrr) {
		b.coldStore = cold
		b.coldThreshold = thresholdBytes
		b.coldIsRef = isRef
	}
}

// New constructs a Brrr over store s and queue q.
func New(s store.Store, q queue.Queue, opts ...Option) *Brrr {
	b := &Brrr{
		queue:      q,
		codec:      codec.NewJSON(),
		log:        log.New(log.Fields{}),
		spawnLimit: DefaultSpawnLimit,
		tasks:      make(map[string]registeredTask),
	}
	for _, opt := range opts {
		opt(b)
	}
	var memOpts []memory.Option
	if b.casRetryLimit > 0 {
		memOpts = append(memOpts, memory.WithCASRetryLimit(b.casRetryLimit))
	}
	if b.coldStore != nil {
		memOpts = append(memOpts, memory.WithColdStore(b.coldStore, b.coldThreshold, b.coldIsRef))
	}
	b.memory = memory.New(s, b.codec, memOpts...)
	return b
}

// Schedule registers a fresh root execution of t(args) and returns
// its root id, unless a call record already exists for (t.name, args)
// — already running or already complete — in which case it returns
// ("", nil) and the caller should use Read once the result is
// expected to be available.
func Schedule[Args, Out any](ctx context.Context, t *Task[Args, Out], args Args) (rootID string, err error) {
	b := t.engine

	call, err := b.memory.MakeCall(t.name, args)
	if err != nil {
		return "", fmt.Errorf("engine: schedule %s: %w", t.name, err)
	}

	has, err := b.memory.HasCall(ctx, call)
	if err != nil {
		return "", err
	}
	if has {
		return "", nil
	}

	if err := b.memory.SetCall(ctx, call); err != nil {
		return "", err
	}

	rootID, err = newRootID()
	if err != nil {
		return "", err
	}

	if err := b.putJob(ctx, call.MemoKey, rootID); err != nil {
		return "", err
	}
	return rootID, nil
}

// Read looks up the cached result of t(args), returning
// types.ErrNotFound if the call has not completed (or never ran).
func Read[Args, Out any](ctx context.Context, t *Task[Args, Out], args Args) (Out, error) {
	var zero Out
	b := t.engine

	call, err := b.memory.MakeCall(t.name, args)
	if err != nil {
		return zero, err
	}
	raw, err := b.memory.GetValue(ctx, call)
	if err != nil {
		return zero, err
	}
	var out Out
	if err := b.codec.DecodeReturn(raw, &out); err != nil {
		return zero, fmt.Errorf("engine: decode return for %s: %w", t.name, err)
	}
	return out, nil
}

// putJob increments rootID's spawn counter and, if still within the
// spawn limit, enqueues memoKey for that root.
func (b *Brrr) putJob(ctx context.Context, memoKey, rootID string) error {
	n, err := b.memory.IncrSpawnCounter(ctx, rootID)
	if err != nil {
		return err
	}
	if n > int64(b.spawnLimit) {
		b.metrics.IncSpawnLimitHits()
		return fmt.Errorf("%w: root %s after %d enqueues", types.ErrSpawnLimit, rootID, n)
	}

	if err := b.queue.PutMessage(ctx, joinMessage(rootID, memoKey)); err != nil {
		return fmt.Errorf("engine: put job: %w", err)
	}
	b.metrics.IncEnqueued()
	return nil
}

// scheduleCallNested persists child's call record and registers
// parentMessage (the full "rootID/parentMemoKey" string) as a waiter
// on it, scheduling child's job the first time any waiter registers.
// Called by the worker when a parent task body defers on child.
func (b *Brrr) scheduleCallNested(ctx context.Context, child types.Call, rootID, parentMessage string) error {
	if err := b.memory.SetCall(ctx, child); err != nil {
		return err
	}

	scheduleJob := func(ctx context.Context) error {
		return b.putJob(ctx, child.MemoKey, rootID)
	}

	childAlreadyComplete, err := b.memory.AddPendingReturn(ctx, child.MemoKey, parentMessage, scheduleJob)
	if err != nil {
		return err
	}

	if childAlreadyComplete {
		parentRootID, parentMemoKey, splitErr := splitMessage(parentMessage)
		if splitErr != nil {
			return splitErr
		}
		return b.putJob(ctx, parentMemoKey, parentRootID)
	}
	return nil
}

func (b *Brrr) lookupTask(name string) (registeredTask, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tasks[name]
	return t, ok
}
