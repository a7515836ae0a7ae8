package jobstore

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleKind classifies how a Job's firing schedule is determined.
type ScheduleKind string

// Recognized schedule kinds.
const (
	Immediate ScheduleKind = "IMMEDIATE"
	OneShot   ScheduleKind = "ONE_TIME"
	Recurring ScheduleKind = "RECURRING"
)

// Status is a Job's lifecycle state.
type Status string

// Recognized statuses, matching the state machine in the scheduling
// engine design.
const (
	Scheduling       Status = "SCHEDULING"
	Scheduled        Status = "SCHEDULED"
	Running          Status = "RUNNING"
	CompletedSuccess Status = "COMPLETED_SUCCESS"
	CompletedFailure Status = "COMPLETED_FAILURE"
	Paused           Status = "PAUSED"
)

// Job is a persisted scheduling intent owned by a tenant.
type Job struct {
	ID           uuid.UUID
	TenantID     string
	ScheduleKind ScheduleKind

	// WallStart is a zone-less calendar instant, meaningful only for
	// OneShot and as a creation marker for Recurring. Represented in
	// time.UTC but carrying the local wall-clock fields of Zone.
	WallStart *time.Time

	// Cron is the canonical 6-field expression, set only for Recurring.
	Cron string

	// Zone is the IANA zone name the schedule is interpreted in.
	Zone string

	Status Status

	// NextFire is the wall-clock (in Zone) of the next scheduled fire.
	NextFire *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
