package gaz

import (
	"fmt"
	"strings"

	"github.com/fluxcron/dispatcher/config"
)

// ResolutionError describes a failed service resolution, including the
// resolution chain that led to it.
type ResolutionError struct {
	// ServiceName is the service that failed to resolve.
	ServiceName string

	// Chain is the resolution path that led to the failure, outermost first.
	Chain []string

	// Cause is the underlying error.
	Cause error
}

// Error returns the formatted resolution failure.
func (e *ResolutionError) Error() string {
	if len(e.Chain) == 0 {
		return fmt.Sprintf("gaz: resolving %s: %v", e.ServiceName, e.Cause)
	}
	return fmt.Sprintf("gaz: resolving %s (chain: %s): %v",
		e.ServiceName, strings.Join(e.Chain, " -> "), e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// LifecycleError describes a failed service start or stop.
type LifecycleError struct {
	// ServiceName is the service whose hook failed.
	ServiceName string

	// Phase is "start" or "stop".
	Phase string

	// Cause is the underlying error.
	Cause error
}

// Error returns the formatted lifecycle failure.
func (e *LifecycleError) Error() string {
	return fmt.Sprintf("gaz: %s %s: %v", e.Phase, e.ServiceName, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *LifecycleError) Unwrap() error {
	return e.Cause
}

// Config validation error types, re-exported from the config package.
type (
	// ValidationError holds multiple config field validation failures.
	ValidationError = config.ValidationError

	// FieldError represents a single field validation failure.
	FieldError = config.FieldError
)

// NewFieldError creates a FieldError with the given parameters.
func NewFieldError(namespace, tag, param, message string) FieldError {
	return config.NewFieldError(namespace, tag, param, message)
}

// NewValidationError creates a ValidationError from field errors.
func NewValidationError(errs []FieldError) ValidationError {
	return config.NewValidationError(errs)
}
