package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/justapithecus/brrr/queue/memqueue"
	"github.com/justapithecus/brrr/store/memstore"
	"github.com/justapithecus/brrr/types"
)

func newTestEngine() *Brrr {
	return New(memstore.New(), memqueue.New(16, 0))
}

func TestInvokeOutsideWorkerRunsSynchronously(t *testing.T) {
	b := newTestEngine()
	double, err := RegisterTask(b, "double", func(_ ExecCtx, n float64) (Outcome[float64], error) {
		return Done(n * 2), nil
	})
	if err != nil {
		t.Fatalf("RegisterTask: %v", err)
	}

	out, err := double.Invoke(OutsideWorker(context.Background()), 3)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !out.Ready || out.Value != 6 {
		t.Fatalf("expected Ready(6), got %+v", out)
	}
}

func TestInvokeInsideWorkerCacheMiss(t *testing.T) {
	b := newTestEngine()
	double, err := RegisterTask(b, "double", func(_ ExecCtx, n float64) (Outcome[float64], error) {
		return Done(n * 2), nil
	})
	if err != nil {
		t.Fatalf("RegisterTask: %v", err)
	}

	ec := workerExecCtx(context.Background(), "root-1", b)
	out, err := double.Invoke(ec, 5)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out.Ready {
		t.Fatalf("expected Missing on first worker-context invoke, got Ready(%v)", out.Value)
	}
	if len(out.Missing) != 1 || out.Missing[0].TaskName != "double" {
		t.Fatalf("unexpected missing set: %+v", out.Missing)
	}
}

func TestInvokeInsideWorkerCacheHit(t *testing.T) {
	b := newTestEngine()
	double, err := RegisterTask(b, "double", func(_ ExecCtx, n float64) (Outcome[float64], error) {
		return Done(n * 2), nil
	})
	if err != nil {
		t.Fatalf("RegisterTask: %v", err)
	}

	ctx := context.Background()
	call, err := b.memory.MakeCall("double", float64(5))
	if err != nil {
		t.Fatalf("MakeCall: %v", err)
	}
	returnBytes, err := b.codec.EncodeReturn(float64(10))
	if err != nil {
		t.Fatalf("EncodeReturn: %v", err)
	}
	if err := b.memory.SetValue(ctx, call.MemoKey, returnBytes); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	ec := workerExecCtx(ctx, "root-1", b)
	out, err := double.Invoke(ec, 5)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !out.Ready || out.Value != 10 {
		t.Fatalf("expected Ready(10), got %+v", out)
	}
}

func TestRegisterTaskDuplicateName(t *testing.T) {
	b := newTestEngine()
	fn := func(_ ExecCtx, n int) (Outcome[int], error) { return Done(n), nil }

	if _, err := RegisterTask(b, "same", fn); err != nil {
		t.Fatalf("first RegisterTask: %v", err)
	}
	_, err := RegisterTask(b, "same", fn)
	if !errors.Is(err, types.ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}
}

func TestRegisterTaskEmptyName(t *testing.T) {
	b := newTestEngine()
	_, err := RegisterTask(b, "", func(_ ExecCtx, n int) (Outcome[int], error) { return Done(n), nil })
	if !errors.Is(err, types.ErrInvalidTaskName) {
		t.Fatalf("expected ErrInvalidTaskName, got %v", err)
	}
}

func TestMapGathersAllMissingChildren(t *testing.T) {
	b := newTestEngine()
	one, err := RegisterTask(b, "one", func(_ ExecCtx, _ int) (Outcome[int], error) {
		return Done(1), nil
	})
	if err != nil {
		t.Fatalf("RegisterTask: %v", err)
	}

	ec := workerExecCtx(context.Background(), "root-1", b)
	out, err := one.Map(ec, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if out.Ready {
		t.Fatalf("expected Missing on first worker-context invoke of all 3 args")
	}
	if len(out.Missing) != 3 {
		t.Fatalf("expected 3 distinct missing children, got %d", len(out.Missing))
	}
}
