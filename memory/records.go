package memory

import (
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// callRecord is the persisted `call` namespace record: the task name
// plus the codec-opaque argument bytes.
type callRecord struct {
	TaskName  string `msgpack:"task_name"`
	CallBytes []byte `msgpack:"call_bytes"`
}

func encodeCallRecord(r callRecord) ([]byte, error) {
	return msgpack.Marshal(r)
}

func decodeCallRecord(data []byte) (callRecord, error) {
	var r callRecord
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return callRecord{}, err
	}
	return r, nil
}

// pendingReturnsRecord is the persisted `pending_returns` namespace
// record: the scheduled-at marker (empty means "child job not yet
// enqueued") plus the sorted set of parent memo keys waiting on the
// child. Returns is kept sorted on every encode so that
// two processes that build the same logical set always produce
// byte-identical encodings — required for CompareAndSet/CompareAndDelete
// to compare correctly.
type pendingReturnsRecord struct {
	ScheduledAt string   `msgpack:"scheduled_at"`
	Returns     []string `msgpack:"returns"`
}

func (r pendingReturnsRecord) hasParent(parentKey string) bool {
	for _, p := range r.Returns {
		if p == parentKey {
			return true
		}
	}
	return false
}

func (r pendingReturnsRecord) withParent(parentKey string) pendingReturnsRecord {
	returns := make([]string, 0, len(r.Returns)+1)
	returns = append(returns, r.Returns...)
	returns = append(returns, parentKey)
	sort.Strings(returns)
	return pendingReturnsRecord{ScheduledAt: r.ScheduledAt, Returns: returns}
}

func encodePendingReturns(r pendingReturnsRecord) ([]byte, error) {
	sorted := make([]string, len(r.Returns))
	copy(sorted, r.Returns)
	sort.Strings(sorted)
	return msgpack.Marshal(pendingReturnsRecord{ScheduledAt: r.ScheduledAt, Returns: sorted})
}

func decodePendingReturns(data []byte) (pendingReturnsRecord, error) {
	var r pendingReturnsRecord
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return pendingReturnsRecord{}, err
	}
	return r, nil
}
