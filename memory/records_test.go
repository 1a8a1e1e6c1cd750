package memory

import (
	"bytes"
	"testing"
)

func TestPendingReturnsEncodingIsSortedAndStable(t *testing.T) {
	a := pendingReturnsRecord{ScheduledAt: "1", Returns: []string{"p2", "p1", "p3"}}
	b := pendingReturnsRecord{ScheduledAt: "1", Returns: []string{"p1", "p3", "p2"}}

	ea, err := encodePendingReturns(a)
	if err != nil {
		t.Fatalf("encode a: %v", err)
	}
	eb, err := encodePendingReturns(b)
	if err != nil {
		t.Fatalf("encode b: %v", err)
	}

	if !bytes.Equal(ea, eb) {
		t.Fatalf("expected byte-identical encodings regardless of insertion order")
	}
}

func TestCallRecordRoundTrip(t *testing.T) {
	r := callRecord{TaskName: "foo", CallBytes: []byte(`{"n":1}`)}
	encoded, err := encodeCallRecord(r)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeCallRecord(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.TaskName != r.TaskName || !bytes.Equal(decoded.CallBytes, r.CallBytes) {
		t.Fatalf("round-trip mismatch: %+v vs %+v", decoded, r)
	}
}
