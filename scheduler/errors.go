package scheduler

import "errors"

// Sentinel errors for the scheduler package.
var (
	// ErrNotFound indicates no Trigger exists for the given job id.
	ErrNotFound = errors.New("scheduler: trigger not found")

	// ErrInvalidSpec indicates a Spec is missing required fields for its Kind.
	ErrInvalidSpec = errors.New("scheduler: invalid spec")
)
