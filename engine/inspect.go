package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/justapithecus/brrr/types"
)

// CallStatus is a read-only snapshot of one call's state, for
// operator-facing inspection. It never mutates Memory.
type CallStatus struct {
	TaskName   string
	MemoKey    string
	Ready      bool
	Value      string
	SpawnCount int64
	SpawnLimit int
}

// Inspect reports t(args)'s current status under rootID: whether its
// value is cached, the value itself (JSON-rendered, if ready), and
// rootID's spawn counter against the engine's configured limit.
func Inspect[Args, Out any](ctx context.Context, t *Task[Args, Out], args Args, rootID string) (CallStatus, error) {
	b := t.engine

	call, err := b.memory.MakeCall(t.name, args)
	if err != nil {
		return CallStatus{}, fmt.Errorf("engine: inspect %s: %w", t.name, err)
	}

	status := CallStatus{
		TaskName:   t.name,
		MemoKey:    call.MemoKey,
		SpawnLimit: b.spawnLimit,
	}

	if rootID != "" {
		n, err := b.memory.SpawnCount(ctx, rootID)
		if err != nil {
			return CallStatus{}, err
		}
		status.SpawnCount = n
	}

	raw, err := b.memory.GetValue(ctx, call)
	if errors.Is(err, types.ErrNotFound) {
		return status, nil
	}
	if err != nil {
		return CallStatus{}, err
	}

	var out Out
	if err := b.codec.DecodeReturn(raw, &out); err != nil {
		return CallStatus{}, fmt.Errorf("engine: inspect decode return for %s: %w", t.name, err)
	}
	rendered, err := json.Marshal(out)
	if err != nil {
		return CallStatus{}, fmt.Errorf("engine: inspect render value for %s: %w", t.name, err)
	}

	status.Ready = true
	status.Value = string(rendered)
	return status, nil
}
