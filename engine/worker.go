package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/justapithecus/brrr/log"
	"github.com/justapithecus/brrr/types"
)

// Worker pulls queue messages and runs task bodies inside worker
// context. At most one Worker may run at a time per Brrr instance.
type Worker struct {
	engine *Brrr
	log    *log.Logger
}

// NewWorker acquires the per-engine worker singleton, returning
// types.ErrWorkerAlreadyRunning if one is already running against b.
// Release must be called once the worker stops, typically via defer,
// so a subsequent NewWorker call can succeed.
func NewWorker(b *Brrr) (*Worker, error) {
	if !b.workerRunning.CompareAndSwap(false, true) {
		return nil, types.ErrWorkerAlreadyRunning
	}
	return &Worker{engine: b, log: b.log}, nil
}

// Release frees the worker singleton.
func (w *Worker) Release() {
	w.engine.workerRunning.Store(false)
}

// Run executes the worker loop until the queue closes or an
// unrecoverable error occurs. Durable state is always left consistent
// on error: a fresh worker may resume where this one stopped.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("worker loop started", nil)
	for {
		msg, err := w.engine.queue.GetMessage(ctx)
		switch {
		case errors.Is(err, types.ErrQueueEmpty):
			continue
		case errors.Is(err, types.ErrQueueClosed):
			w.log.Info("worker loop stopped: queue closed", nil)
			return nil
		case err != nil:
			w.log.Error("worker loop stopped: queue error", map[string]any{"error": err.Error()})
			return fmt.Errorf("engine: worker: %w", err)
		}

		if err := w.handleMessage(ctx, msg); err != nil {
			return err
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg string) error {
	rootID, memoKey, err := splitMessage(msg)
	if err != nil {
		return err
	}

	taskName, payload, err := w.engine.memory.GetCallBytes(ctx, memoKey)
	if err != nil {
		return fmt.Errorf("engine: worker: load call %s: %w", memoKey, err)
	}

	task, ok := w.engine.lookupTask(taskName)
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrTaskNotFound, taskName)
	}

	args, err := w.engine.codec.DecodeCallArgs(payload)
	if err != nil {
		return fmt.Errorf("engine: worker: decode call args: %w", err)
	}

	ec := workerExecCtx(ctx, rootID, w.engine)

	outcome, err := task.run(ec, args)
	if err != nil {
		w.log.WithFields(log.Fields{RootID: rootID, MemoKey: memoKey, TaskName: taskName}).Error("task execution failed", map[string]any{
			"error": err.Error(),
		})
		return err
	}
	w.engine.metrics.IncTasksExecuted()

	entryLog := w.log.WithFields(log.Fields{RootID: rootID, MemoKey: memoKey, TaskName: taskName})
	if !outcome.Ready {
		entryLog.Debug("task deferred on missing calls", map[string]any{"missing": len(outcome.Missing)})
		return w.handleDefer(ctx, rootID, msg, outcome.Missing)
	}
	entryLog.Debug("task ready", nil)
	return w.handleReturn(ctx, rootID, memoKey, outcome.Value)
}

func (w *Worker) handleReturn(ctx context.Context, rootID, memoKey string, value any) error {
	returnBytes, err := w.engine.codec.EncodeReturn(value)
	if err != nil {
		return fmt.Errorf("engine: worker: encode return: %w", err)
	}

	if err := w.engine.memory.SetValue(ctx, memoKey, returnBytes); err != nil {
		if errors.Is(err, types.ErrKeyAlreadyExists) {
			// A concurrent worker already ran this call to completion;
			// its result wins and ours is discarded. That worker either
			// already woke this call's parents or will, so there is
			// nothing further to do here.
			w.log.WithFields(log.Fields{RootID: rootID, MemoKey: memoKey}).Debug("value already set by a concurrent worker", nil)
			w.engine.metrics.IncValueConflicts()
			return nil
		}
		return err
	}
	w.engine.metrics.IncTasksReturned()

	return w.engine.memory.WithPendingReturnsRemove(ctx, memoKey, func(ctx context.Context, parentMessage string) error {
		parentRootID, parentMemoKey, err := splitMessage(parentMessage)
		if err != nil {
			return err
		}
		w.engine.metrics.IncParentsWoken()
		return w.engine.putJob(ctx, parentMemoKey, parentRootID)
	})
}

func (w *Worker) handleDefer(ctx context.Context, rootID, parentMessage string, missing []types.Call) error {
	w.engine.metrics.IncTasksDeferred()
	w.log.WithFields(log.Fields{RootID: rootID}).Debug("scheduling missing calls", map[string]any{"count": len(missing)})
	for _, child := range missing {
		if err := w.engine.scheduleCallNested(ctx, child, rootID, parentMessage); err != nil {
			return err
		}
	}
	return nil
}
