package codec

import (
	"encoding/json"
	"fmt"

	"github.com/justapithecus/brrr/types"
)

// JSON is the default ("naive") codec. Memo keys are the UTF-8
// encoding of canonical JSON `[taskName, args]`. encoding/json sorts
// map[string]any keys on every Marshal call since Go 1.12, which gives
// named-parameter order-independence for free; args given as a struct
// are first normalized into a map (see normalize), so their field
// order does not affect the memo key either.
type JSON struct{}

// NewJSON constructs the default canonical-JSON codec.
func NewJSON() JSON { return JSON{} }

func (JSON) CreateCall(taskName string, args any) (types.Call, error) {
	normalized, err := normalize(args)
	if err != nil {
		return types.Call{}, fmt.Errorf("codec: normalize args: %w", err)
	}

	memoKey, err := canonicalMemoKey(taskName, normalized)
	if err != nil {
		return types.Call{}, fmt.Errorf("codec: derive memo key: %w", err)
	}

	return types.Call{TaskName: taskName, Args: normalized, MemoKey: memoKey}, nil
}

func (JSON) EncodeCall(call types.Call) ([]byte, error) {
	b, err := json.Marshal(call.Args)
	if err != nil {
		return nil, fmt.Errorf("codec: encode call args: %w", err)
	}
	return b, nil
}

func (JSON) DecodeCallArgs(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("codec: decode call args: %w", err)
	}
	return v, nil
}

func (JSON) EncodeReturn(value any) ([]byte, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("codec: encode return: %w", err)
	}
	return b, nil
}

func (JSON) DecodeReturn(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("codec: decode return: %w", err)
	}
	return nil
}

// canonicalMemoKey renders `[taskName, args]` as canonical JSON.
func canonicalMemoKey(taskName string, args any) (string, error) {
	b, err := json.Marshal([2]any{taskName, args})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// normalize round-trips args through JSON to collapse it to the plain
// map[string]any / []any / float64 / string / bool / nil shape that
// encoding/json produces on Unmarshal into `any`. This guarantees two
// logically-identical calls built from different concrete Go types
// (e.g. a struct vs. an equivalent map) still derive the same memo key,
// and that the value stored in the Call is exactly what a worker sees
// after decoding the persisted call record.
func normalize(args any) (any, error) {
	if args == nil {
		return nil, nil
	}
	b, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
