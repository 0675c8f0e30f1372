package campus

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnreachable is returned when a service cannot be contacted.
	ErrUnreachable = errors.New("service unreachable")

	// ErrGroupNameTaken is returned when group creation hits a duplicate name.
	ErrGroupNameTaken = errors.New("group name taken")
)

// UnreachableError wraps a connection-level failure.
type UnreachableError struct {
	// Cause is the underlying transport error.
	Cause error
}

// Error returns a human-readable description.
func (e *UnreachableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service unreachable: %v", e.Cause)
	}
	return "service unreachable"
}

// Unwrap returns the underlying cause.
func (e *UnreachableError) Unwrap() error { return e.Cause }

// Is reports whether this error matches ErrUnreachable.
func (e *UnreachableError) Is(target error) bool {
	return target == ErrUnreachable
}

// StatusError is a non-2xx service response.
type StatusError struct {
	// Code is the HTTP status code.
	Code int
	// Detail is the response detail, when the body was parseable.
	Detail string
}

// Error returns a human-readable description.
func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("service returned %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("service returned %d", e.Code)
}
