package cmd

import (
	"github.com/justapithecus/brrr/engine"
)

// triangularSumTask is registered on every engine this binary builds,
// giving the schedule/read/inspect commands something concrete to
// exercise. It computes triangular_sum(n) = n + (n-1) + ... + 0 by
// recursive invocation, the canonical fan-out-free example of the
// engine's memoized recursion.
var triangularSumTask *engine.Task[float64, float64]

func registerBuiltinTasks(b *engine.Brrr) {
	t, err := engine.RegisterTask(b, "triangular_sum", func(ec engine.ExecCtx, n float64) (engine.Outcome[float64], error) {
		if n <= 0 {
			return engine.Done(0.0), nil
		}
		prev, err := triangularSumTask.Invoke(ec, n-1)
		if err != nil {
			return engine.Outcome[float64]{}, err
		}
		if !prev.Ready {
			return prev, nil
		}
		return engine.Done(n + prev.Value), nil
	})
	if err != nil {
		// Registration only fails on a duplicate or empty name, neither
		// of which can happen against a freshly constructed engine.
		panic(err)
	}
	triangularSumTask = t
}
