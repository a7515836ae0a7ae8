// Package scheduler holds the durable Trigger store and the in-memory
// scheduling engine that dispatches due triggers onto a bounded worker
// pool.
//
// The engine treats the in-memory priority queue as a cache over the
// TriggerStore, and the queue is rehydrated from it on OnStart. Register
// writes the store before it changes the queue; Deregister, Pause and
// Resume change the queue first and write the store afterwards, so a
// store error from them leaves the queue and the store out of step. A
// single dispatcher goroutine owns the queue; callers communicate with it
// only through Register/Deregister/Pause/Resume, which take a mutex and
// wake the dispatcher when they change the earliest due instant.
//
// For a given JobID the engine never has more than one fire in flight:
// a due trigger whose JobID is already running is skipped and, if
// recurring, advanced past the overlap rather than queued.
package scheduler
