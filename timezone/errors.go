package timezone

import "errors"

// Sentinel errors for the timezone package.
var (
	// ErrZoneUnknown indicates a zone name did not resolve via the IANA
	// tzdata embedded in the Go runtime.
	ErrZoneUnknown = errors.New("timezone: zone unknown")
)
