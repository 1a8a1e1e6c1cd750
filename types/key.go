package types

// Namespace partitions the Store's flat key space. Counter keys
// (NamespaceCount) are logically disjoint from the call/value/
// pending-returns namespaces.
type Namespace string

const (
	// NamespaceCall holds the encoded (taskName, callBytes) record for
	// every memo key ever referenced.
	NamespaceCall Namespace = "call"
	// NamespaceValue holds the encoded return bytes for a completed call.
	NamespaceValue Namespace = "value"
	// NamespacePendingReturns holds the serialized waiter set for a
	// not-yet-completed call.
	NamespacePendingReturns Namespace = "pending_returns"
	// NamespaceCount holds the per-root spawn counters.
	NamespaceCount Namespace = "count"
)

// Key identifies a single Store entry. Two Keys with equal Namespace
// and ID address the same slot.
type Key struct {
	Namespace Namespace
	ID        string
}

// String renders the key in the Store's on-the-wire form "namespace/id".
func (k Key) String() string {
	return string(k.Namespace) + "/" + k.ID
}

// CallKey builds the call-record key for memoKey.
func CallKey(memoKey string) Key { return Key{Namespace: NamespaceCall, ID: memoKey} }

// ValueKey builds the value key for memoKey.
func ValueKey(memoKey string) Key { return Key{Namespace: NamespaceValue, ID: memoKey} }

// PendingReturnsKey builds the pending-returns key for memoKey.
func PendingReturnsKey(memoKey string) Key { return Key{Namespace: NamespacePendingReturns, ID: memoKey} }

// CounterKey builds the spawn-counter key for a root workflow id.
func CounterKey(rootID string) Key { return Key{Namespace: NamespaceCount, ID: rootID} }
