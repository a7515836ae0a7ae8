package jobservice

import "errors"

// Sentinel errors surfaced to the API layer.
var (
	// ErrValidation indicates a structurally invalid request, such as a
	// missing tenant id or a schedule field that does not fit the kind.
	ErrValidation = errors.New("jobservice: invalid request")

	// ErrZoneInvalid indicates the requested time zone is unknown.
	ErrZoneInvalid = errors.New("jobservice: unknown time zone")

	// ErrPastScheduleTime indicates a one-shot start time already in the
	// past in its zone, beyond the processing grace.
	ErrPastScheduleTime = errors.New("jobservice: start time is in the past")

	// ErrInvalidCron indicates a syntactically invalid cron expression.
	ErrInvalidCron = errors.New("jobservice: invalid cron expression")

	// ErrNotFound indicates an unknown job id.
	ErrNotFound = errors.New("jobservice: job not found")
)
