package jobstore

import "errors"

// Sentinel errors for the jobstore package.
var (
	// ErrNotFound indicates no Job exists with the given id.
	ErrNotFound = errors.New("jobstore: job not found")
)
