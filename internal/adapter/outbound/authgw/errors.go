package authgw

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidCredentials is returned when the gateway rejects a login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken is returned when registration hits a duplicate username.
	ErrUsernameTaken = errors.New("username taken")

	// ErrUnreachable is returned when the auth gateway cannot be contacted.
	ErrUnreachable = errors.New("auth gateway unreachable")
)

// InvalidCredentialsError is returned on a 401 login response.
type InvalidCredentialsError struct {
	// Detail is the gateway-provided explanation, when present.
	Detail string
}

// Error returns a human-readable description of the rejection.
func (e *InvalidCredentialsError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("invalid credentials: %s", e.Detail)
	}
	return "invalid credentials"
}

// Is reports whether this error matches ErrInvalidCredentials.
func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// UsernameTakenError is returned on a 409 registration response.
type UsernameTakenError struct {
	// Username is the login name that already exists.
	Username string
}

// Error returns a human-readable description of the conflict.
func (e *UsernameTakenError) Error() string {
	return fmt.Sprintf("username %q is already taken", e.Username)
}

// Is reports whether this error matches ErrUsernameTaken.
func (e *UsernameTakenError) Is(target error) bool {
	return target == ErrUsernameTaken
}

// UnreachableError is returned when the gateway cannot be contacted at
// the connection level (DNS, refused, timeout).
type UnreachableError struct {
	// Cause is the underlying transport error.
	Cause error
}

// Error returns a human-readable description.
func (e *UnreachableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth gateway unreachable: %v", e.Cause)
	}
	return "auth gateway unreachable"
}

// Unwrap returns the underlying cause.
func (e *UnreachableError) Unwrap() error { return e.Cause }

// Is reports whether this error matches ErrUnreachable.
func (e *UnreachableError) Is(target error) bool {
	return target == ErrUnreachable
}

// GatewayError covers any other non-2xx gateway response.
type GatewayError struct {
	// Code is the HTTP status code.
	Code int
	// Detail is the response body detail, when parseable.
	Detail string
}

// Error returns a human-readable description of the failure.
func (e *GatewayError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("auth gateway returned %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("auth gateway returned %d", e.Code)
}
