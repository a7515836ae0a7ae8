package scheduler

import (
	"context"

	"github.com/google/uuid"
)

// TriggerStore is the durable persistence contract for Trigger rows. The
// engine treats its in-memory queue as a cache over this store: Register
// writes here before the queue changes, Deregister, Pause and Resume
// write here after it, and LoadActive rehydrates the queue on process
// start.
type TriggerStore interface {
	Upsert(ctx context.Context, t *Trigger) error
	Delete(ctx context.Context, jobID uuid.UUID) error
	LoadActive(ctx context.Context) ([]*Trigger, error)
	SetPaused(ctx context.Context, jobID uuid.UUID, paused bool) error
}
