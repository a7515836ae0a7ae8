package publisher

import "errors"

// Sentinel errors for the publisher package.
var (
	// ErrNilRecord indicates a zero-value record was passed to Publish.
	// This is a programming error in the caller, never retried.
	ErrNilRecord = errors.New("publisher: nil record")

	// ErrPublishFailed indicates delivery failed after all retry attempts.
	ErrPublishFailed = errors.New("publisher: publish failed")
)
