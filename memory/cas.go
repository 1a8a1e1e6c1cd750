package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/justapithecus/brrr/types"
)

// CASRetryLimit is the default bound on WithCas retries.
const CASRetryLimit = 100

// WithCas retries fn up to the configured retry limit (CASRetryLimit
// unless overridden via WithCASRetryLimit), catching
// types.ErrCompareMismatch and retrying; any other error propagates
// immediately. Exhaustion raises types.ErrCasRetryLimit.
func (m *Memory) WithCas(ctx context.Context, fn func(ctx context.Context) error) error {
	limit := m.casRetryLimit
	if limit <= 0 {
		limit = CASRetryLimit
	}
	return m.withCasLimit(ctx, limit, fn)
}

func (m *Memory) withCasLimit(ctx context.Context, limit int, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < limit; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, types.ErrCompareMismatch) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: last attempt error: %v", types.ErrCasRetryLimit, lastErr)
}
