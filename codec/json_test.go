package codec

import (
	"testing"
)

func TestJSONCreateCallDeterministic(t *testing.T) {
	c := NewJSON()

	a, err := c.CreateCall("f", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("CreateCall: %v", err)
	}
	b, err := c.CreateCall("f", map[string]any{"b": 2, "a": 1})
	if err != nil {
		t.Fatalf("CreateCall: %v", err)
	}

	if a.MemoKey != b.MemoKey {
		t.Fatalf("expected order-independent memo key, got %q vs %q", a.MemoKey, b.MemoKey)
	}
}

func TestJSONCreateCallDistinctArgs(t *testing.T) {
	c := NewJSON()

	a, _ := c.CreateCall("f", 1)
	b, _ := c.CreateCall("f", 2)

	if a.MemoKey == b.MemoKey {
		t.Fatalf("expected distinct memo keys for distinct args, got %q for both", a.MemoKey)
	}
}

func TestJSONCreateCallDistinctTaskNames(t *testing.T) {
	c := NewJSON()

	a, _ := c.CreateCall("f", 1)
	b, _ := c.CreateCall("g", 1)

	if a.MemoKey == b.MemoKey {
		t.Fatalf("expected distinct memo keys for distinct task names")
	}
}

func TestJSONRoundTripReturn(t *testing.T) {
	c := NewJSON()

	encoded, err := c.EncodeReturn(map[string]any{"n": float64(6)})
	if err != nil {
		t.Fatalf("EncodeReturn: %v", err)
	}

	var out map[string]any
	if err := c.DecodeReturn(encoded, &out); err != nil {
		t.Fatalf("DecodeReturn: %v", err)
	}
	if out["n"] != float64(6) {
		t.Fatalf("expected n=6, got %v", out["n"])
	}
}

func TestJSONEncodeCallDecodeCallArgsRoundTrip(t *testing.T) {
	c := NewJSON()

	call, err := c.CreateCall("triangular_sum", float64(3))
	if err != nil {
		t.Fatalf("CreateCall: %v", err)
	}
	payload, err := c.EncodeCall(call)
	if err != nil {
		t.Fatalf("EncodeCall: %v", err)
	}

	args, err := c.DecodeCallArgs(payload)
	if err != nil {
		t.Fatalf("DecodeCallArgs: %v", err)
	}
	if args != float64(3) {
		t.Fatalf("expected 3, got %v", args)
	}
}
