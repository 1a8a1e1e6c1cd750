package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/justapithecus/brrr/types"
)

// Fn is a task body. Inside worker context it must check the
// readiness of every child Invoke/Map call it makes and propagate an
// Outcome's Missing list upward (typically by returning the child's
// own Outcome directly) rather than proceed past a child that is not
// yet ready.
type Fn[Args, Out any] func(ec ExecCtx, args Args) (Outcome[Out], error)

// Task is a named, registered unit of recursive work.
type Task[Args, Out any] struct {
	engine *Brrr
	name   string
	fn     Fn[Args, Out]
}

// Name reports the task's registered name.
func (t *Task[Args, Out]) Name() string { return t.name }

// Invoke runs or looks up the task depending on ec:
//
//   - Outside worker context: runs fn(ec, args) synchronously with no
//     Store or Queue I/O. Any nested Invoke calls made by fn also run
//     synchronously, since ec's worker flag propagates unchanged, so
//     the whole call tree resolves in one Go call stack.
//   - Inside worker context: builds the Call and consults the cached
//     value. If present, decodes and returns it Ready. If absent,
//     returns Missing with this call alone — the caller (another
//     task body, via Gather, or the worker for a top-level call) is
//     responsible for scheduling it.
func (t *Task[Args, Out]) Invoke(ec ExecCtx, args Args) (Outcome[Out], error) {
	if !ec.worker {
		return t.fn(ec, args)
	}

	call, err := t.engine.memory.MakeCall(t.name, args)
	if err != nil {
		return Outcome[Out]{}, fmt.Errorf("engine: make call for %s: %w", t.name, err)
	}

	raw, err := t.engine.memory.GetValue(ec.ctx, call)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return Outcome[Out]{Missing: []types.Call{call}}, nil
		}
		return Outcome[Out]{}, err
	}

	var out Out
	if err := t.engine.codec.DecodeReturn(raw, &out); err != nil {
		return Outcome[Out]{}, fmt.Errorf("engine: decode return for %s: %w", t.name, err)
	}
	return Outcome[Out]{Ready: true, Value: out}, nil
}

// Map invokes the task once per element of argsList and gathers the
// results into a single Outcome, collecting every missing child
// across every element before returning.
func (t *Task[Args, Out]) Map(ec ExecCtx, argsList []Args) (Outcome[[]Out], error) {
	outcomes := make([]Outcome[Out], len(argsList))
	for i, args := range argsList {
		o, err := t.Invoke(ec, args)
		if err != nil {
			return Outcome[[]Out]{}, err
		}
		outcomes[i] = o
	}
	return Gather(outcomes...), nil
}

// run executes fn directly against rawArgs, decoded by the worker
// from a persisted call record. This is used only by the worker on
// the call it just dequeued — a task body invoking another task goes
// through Invoke's cache check instead, never through run.
func (t *Task[Args, Out]) run(ec ExecCtx, rawArgs any) (rawOutcome, error) {
	args, err := coerce[Args](rawArgs)
	if err != nil {
		return rawOutcome{}, fmt.Errorf("engine: coerce args for %s: %w", t.name, err)
	}

	outcome, err := t.fn(ec, args)
	if err != nil {
		return rawOutcome{}, err
	}
	if !outcome.Ready {
		return rawOutcome{Missing: outcome.Missing}, nil
	}
	return rawOutcome{Ready: true, Value: outcome.Value}, nil
}

// RegisterTask registers fn under name on b. Empty names raise
// types.ErrInvalidTaskName; re-registering an existing name raises
// types.ErrDuplicateTask.
//
// This is a package-level function rather than a method on Brrr
// because Go methods cannot introduce type parameters beyond their
// receiver's — Brrr itself holds tasks behind the type-erased
// registeredTask interface.
func RegisterTask[Args, Out any](b *Brrr, name string, fn Fn[Args, Out]) (*Task[Args, Out], error) {
	if name == "" {
		return nil, types.ErrInvalidTaskName
	}

	t := &Task[Args, Out]{engine: b, name: name, fn: fn}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.tasks[name]; exists {
		return nil, types.ErrDuplicateTask
	}
	b.tasks[name] = t
	return t, nil
}

// coerce adapts a dynamically-typed value, as produced by
// codec.DecodeCallArgs, to T. A direct type assertion handles the
// common case (e.g. T already is float64/string/map[string]any); a
// JSON round trip handles the rest (e.g. T is a caller-defined
// struct), mirroring how the codec would decode the same bytes
// directly into T.
func coerce[T any](v any) (T, error) {
	var zero T
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
