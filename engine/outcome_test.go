package engine

import (
	"testing"

	"github.com/justapithecus/brrr/types"
)

func TestGatherAllReady(t *testing.T) {
	out := Gather(Done(1), Done(2), Done(3))
	if !out.Ready {
		t.Fatalf("expected Ready")
	}
	if len(out.Value) != 3 || out.Value[0] != 1 || out.Value[2] != 3 {
		t.Fatalf("unexpected values: %v", out.Value)
	}
}

func TestGatherCollectsAllMissingAcrossInputs(t *testing.T) {
	c1 := types.Call{TaskName: "a", MemoKey: "a"}
	c2 := types.Call{TaskName: "b", MemoKey: "b"}

	out := Gather(Done(1), Defer[int](c1), Done(2), Defer[int](c2))
	if out.Ready {
		t.Fatalf("expected Missing, got Ready with %v", out.Value)
	}
	if len(out.Missing) != 2 {
		t.Fatalf("expected both missing children collected, got %v", out.Missing)
	}
	if out.Missing[0].MemoKey != "a" || out.Missing[1].MemoKey != "b" {
		t.Fatalf("unexpected missing set: %v", out.Missing)
	}
}

func TestGatherEmpty(t *testing.T) {
	out := Gather[int]()
	if !out.Ready {
		t.Fatalf("expected Ready for empty input")
	}
	if len(out.Value) != 0 {
		t.Fatalf("expected empty values, got %v", out.Value)
	}
}
