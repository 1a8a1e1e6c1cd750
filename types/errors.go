package types

import "errors"

// Sentinel errors for the engine's error taxonomy. Use errors.Is for
// classification; callers wrap these with fmt.Errorf("...: %w", ...)
// to attach context.
var (
	// ErrNotSetup names the "engine not set up" case of the taxonomy.
	// engine.New returns a ready Brrr, so no operation in this module
	// currently returns it.
	ErrNotSetup = errors.New("brrr: engine not set up")

	// ErrDuplicateTask is raised by engine.RegisterTask on re-registration
	// of a name.
	ErrDuplicateTask = errors.New("brrr: task already registered")

	// ErrInvalidTaskName is raised when a task name is empty.
	ErrInvalidTaskName = errors.New("brrr: invalid task name")

	// ErrTaskNotFound is raised by the worker on an unknown task name.
	ErrTaskNotFound = errors.New("brrr: task not found")

	// ErrNotFound is raised by Store.Get and Memory.GetValue when a key
	// is absent.
	ErrNotFound = errors.New("brrr: key not found")

	// ErrKeyAlreadyExists is raised by Memory.SetValue when a concurrent
	// worker has already stored the value for this call.
	ErrKeyAlreadyExists = errors.New("brrr: key already exists")

	// ErrCompareMismatch is raised by the Store's conditional writes
	// (SetNewValue, CompareAndSet, CompareAndDelete) when the observed
	// state does not match the expectation.
	ErrCompareMismatch = errors.New("brrr: compare mismatch")

	// ErrCasRetryLimit is raised by Memory.WithCas when a compare-and-swap
	// transaction fails its configured number of consecutive retries.
	ErrCasRetryLimit = errors.New("brrr: cas retry limit exceeded")

	// ErrQueueEmpty is returned by Queue.GetMessage when the bounded wait
	// elapses with no message available. Transient; callers re-poll.
	ErrQueueEmpty = errors.New("brrr: queue empty")

	// ErrQueueClosed is returned by Queue.GetMessage once the queue has
	// been durably closed. Terminal.
	ErrQueueClosed = errors.New("brrr: queue closed")

	// ErrSpawnLimit is raised by Brrr.putJob when a root workflow's enqueue
	// counter exceeds the configured spawn limit.
	ErrSpawnLimit = errors.New("brrr: spawn limit exceeded")

	// ErrWorkerAlreadyRunning is raised when a second worker attempts to
	// start against an engine instance that already owns one.
	ErrWorkerAlreadyRunning = errors.New("brrr: worker already running")
)
