package engine

import "context"

// ExecCtx is the explicit, per-invocation execution context passed to
// every task body. It carries a context.Context for cancellation and
// whether this invocation is running inside worker context, in place
// of a mutable flag on the engine: a task body dispatches on the
// ExecCtx it was handed, not on ambient engine state, so nested
// invocations and concurrent workers can never observe each other's
// context.
type ExecCtx struct {
	ctx    context.Context
	engine *Brrr
	worker bool
	rootID string
}

// Context returns the underlying context.Context for task bodies that
// need to pass it to further I/O.
func (ec ExecCtx) Context() context.Context { return ec.ctx }

// RootID reports the root workflow id this invocation runs under. It
// is empty outside worker context.
func (ec ExecCtx) RootID() string { return ec.rootID }

// OutsideWorker builds an ExecCtx for direct, synchronous task
// invocation with no engine setup — used by tests and by any client
// that wants to run a task body without scheduling it.
func OutsideWorker(ctx context.Context) ExecCtx {
	return ExecCtx{ctx: ctx}
}

func workerExecCtx(ctx context.Context, rootID string, b *Brrr) ExecCtx {
	return ExecCtx{ctx: ctx, engine: b, worker: true, rootID: rootID}
}
