package engine

import "github.com/justapithecus/brrr/types"

// Outcome is the result of invoking a task: either the value is
// Ready, or the invocation is Missing one or more child calls whose
// results are not yet cached.
//
// This replaces a raised exception with an explicit return value: a
// task body that depends on a not-yet-ready child must check Ready
// and propagate Missing upward itself, rather than relying on the
// runtime to unwind the call stack for it.
type Outcome[T any] struct {
	Ready   bool
	Value   T
	Missing []types.Call
}

// Done builds a Ready outcome carrying v.
func Done[T any](v T) Outcome[T] {
	return Outcome[T]{Ready: true, Value: v}
}

// Defer builds a Missing outcome for the given child calls.
func Defer[T any](calls ...types.Call) Outcome[T] {
	return Outcome[T]{Missing: calls}
}

// Gather reduces a slice of Outcomes into a single Outcome of their
// collected values. If any input is Missing, Gather keeps collecting
// every other input so the caller discovers every missing child in
// one pass, rather than one at a time across repeated re-executions.
func Gather[T any](outcomes ...Outcome[T]) Outcome[[]T] {
	var missing []types.Call
	values := make([]T, 0, len(outcomes))

	for _, o := range outcomes {
		if !o.Ready {
			missing = append(missing, o.Missing...)
			continue
		}
		values = append(values, o.Value)
	}

	if len(missing) > 0 {
		return Outcome[[]T]{Missing: missing}
	}
	return Outcome[[]T]{Ready: true, Value: values}
}

// rawOutcome is Outcome with its value type erased to any, used at
// the task-registry boundary where a Brrr holds tasks of differing
// Args/Out types behind a single interface.
type rawOutcome struct {
	Ready   bool
	Value   any
	Missing []types.Call
}

// registeredTask is the type-erased view of a *Task[Args, Out] held
// in a Brrr's task registry.
type registeredTask interface {
	run(ec ExecCtx, rawArgs any) (rawOutcome, error)
}
