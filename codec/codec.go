// Package codec derives memo keys from (task name, args) pairs and
// encodes/decodes call arguments and return values. Determinism of
// CreateCall across processes is the only correctness requirement.
//
// Running a task body and detecting that it is waiting on unfinished
// children is an engine concern, not a codec one: a task that still
// has missing dependents returns an explicit value the engine package
// inspects directly, rather than codec catching a raised exception.
// Codec here is therefore pure serialization.
package codec

import "github.com/justapithecus/brrr/types"

// Codec derives memo keys and serializes call/return payloads.
// Implementations must be deterministic: the same (taskName, args)
// must always produce the same MemoKey, on any process.
type Codec interface {
	// CreateCall builds a Call, computing its MemoKey from taskName and
	// args.
	CreateCall(taskName string, args any) (types.Call, error)

	// EncodeCall serializes a Call's arguments to the opaque byte form
	// persisted in the `call` namespace.
	EncodeCall(call types.Call) ([]byte, error)

	// DecodeCallArgs is the inverse of EncodeCall: it reconstructs the
	// argument value from its persisted bytes.
	DecodeCallArgs(data []byte) (any, error)

	// EncodeReturn serializes a task's return value to the opaque byte
	// form persisted in the `value` namespace.
	EncodeReturn(value any) ([]byte, error)

	// DecodeReturn is the inverse of EncodeReturn.
	DecodeReturn(data []byte, out any) error
}
