package executor

import "github.com/google/uuid"

// FireCompleted is published on the in-process event bus after a fire
// reaches its terminal outcome, for observers such as audit logging.
type FireCompleted struct {
	JobID     uuid.UUID
	TenantID  string
	Succeeded bool
	Records   int
	Published int
}

// EventName returns the event identifier for logging.
func (e FireCompleted) EventName() string { return "FireCompleted" }
