package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies how a Spec's first fire instant is determined.
type Kind int

// Recognized spec kinds.
const (
	FireNow Kind = iota
	FireAt
	FireCron
)

// Spec describes how a job should be scheduled, as supplied to Register.
type Spec struct {
	Kind Kind

	// Instant is the absolute fire time for FireAt.
	Instant time.Time

	// Cron and Zone describe a recurring schedule for FireCron.
	Cron string
	Zone string
}

// NowSpec returns a Spec that fires immediately.
func NowSpec() Spec { return Spec{Kind: FireNow} }

// AtSpec returns a Spec that fires once at instant.
func AtSpec(instant time.Time) Spec { return Spec{Kind: FireAt, Instant: instant} }

// CronSpec returns a Spec that fires on the given 6-field cron expression,
// interpreted in zone.
func CronSpec(cron, zone string) Spec { return Spec{Kind: FireCron, Cron: cron, Zone: zone} }

// Trigger is the firing-schedule side of a Job, kept both durably and in
// the engine's in-memory priority queue.
type Trigger struct {
	JobID uuid.UUID

	// NextFireInstant is the absolute UTC instant of the next scheduled fire.
	NextFireInstant time.Time

	// Cron is non-empty for recurring triggers; its presence is what tells
	// the engine to recompute and re-enqueue after each fire instead of
	// removing the trigger.
	Cron string
	Zone string

	Paused bool
}

// recurring reports whether t represents a cron-driven schedule.
func (t *Trigger) recurring() bool { return t.Cron != "" }

// Fire is one dispatch of a job to a worker: a snapshot of the trigger
// state at the moment the engine decided the job was due.
type Fire struct {
	JobID uuid.UUID

	// Due is the instant the fire was scheduled for.
	Due time.Time

	// Recurring is true when the trigger is cron-driven and has already
	// been re-enqueued for its next fire.
	Recurring bool

	// NextFire is the instant of the already-enqueued next fire.
	// Zero unless Recurring.
	NextFire time.Time

	// Zone is the IANA zone the schedule is interpreted in. Empty for
	// one-shot and immediate fires.
	Zone string
}
