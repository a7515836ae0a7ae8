package cronspec

import "errors"

// Sentinel errors for the cronspec package.
var (
	// ErrInvalidCron indicates a cron expression failed to parse.
	ErrInvalidCron = errors.New("cronspec: invalid cron expression")
)
