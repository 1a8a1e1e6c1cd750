// Package metrics provides engine-wide counters for scheduling and
// worker activity. The Collector is a leaf package with no internal
// dependencies, so it can be wired into the engine package without
// creating an import cycle.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
// Returned by Collector.Snapshot; safe to read concurrently after
// creation.
type Snapshot struct {
	// TasksExecuted counts every task-body execution the worker ran,
	// whether it returned Ready or deferred on missing children.
	TasksExecuted int64
	// TasksDeferred counts executions that returned Missing children.
	TasksDeferred int64
	// TasksReturned counts executions whose return value was the one
	// durably persisted (excludes discarded concurrent duplicates).
	TasksReturned int64
	// ValueConflicts counts SetValue calls that lost a race to a
	// concurrent worker running the same call.
	ValueConflicts int64
	// SpawnLimitHits counts putJob calls that exceeded the spawn limit.
	SpawnLimitHits int64
	// Enqueued counts successful queue enqueues.
	Enqueued int64
	// ParentsWoken counts parent calls re-enqueued after a child
	// completed.
	ParentsWoken int64
}

// Collector accumulates engine counters. Thread-safe via sync.Mutex.
// All increment methods are nil-receiver safe, so a *Collector left
// as nil (the Brrr default) can be used without a nil check at every
// call site.
type Collector struct {
	mu sync.Mutex

	tasksExecuted  int64
	tasksDeferred  int64
	tasksReturned  int64
	valueConflicts int64
	spawnLimitHits int64
	enqueued       int64
	parentsWoken   int64
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// IncTasksExecuted records one task-body execution.
func (c *Collector) IncTasksExecuted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.tasksExecuted++
	c.mu.Unlock()
}

// IncTasksDeferred records one execution that deferred on missing
// children.
func (c *Collector) IncTasksDeferred() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.tasksDeferred++
	c.mu.Unlock()
}

// IncTasksReturned records one execution whose return value was
// durably persisted.
func (c *Collector) IncTasksReturned() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.tasksReturned++
	c.mu.Unlock()
}

// IncValueConflicts records one SetValue call that lost a race.
func (c *Collector) IncValueConflicts() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.valueConflicts++
	c.mu.Unlock()
}

// IncSpawnLimitHits records one putJob call that exceeded the spawn
// limit.
func (c *Collector) IncSpawnLimitHits() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.spawnLimitHits++
	c.mu.Unlock()
}

// IncEnqueued records one successful queue enqueue.
func (c *Collector) IncEnqueued() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.enqueued++
	c.mu.Unlock()
}

// IncParentsWoken records one parent call re-enqueued after a child
// completed.
func (c *Collector) IncParentsWoken() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.parentsWoken++
	c.mu.Unlock()
}

// Snapshot returns an immutable point-in-time view of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		TasksExecuted:  c.tasksExecuted,
		TasksDeferred:  c.tasksDeferred,
		TasksReturned:  c.tasksReturned,
		ValueConflicts: c.valueConflicts,
		SpawnLimitHits: c.spawnLimitHits,
		Enqueued:       c.enqueued,
		ParentsWoken:   c.parentsWoken,
	}
}
