// Package session derives and owns the single authenticated/unauthenticated
// view of the current user. Every other component reads the session through
// the Manager; nothing else consults credential storage directly.
package session

import (
	"strings"

	"github.com/campuslink/campuslink/internal/domain/auth"
)

// Session is an immutable snapshot of the current authentication state.
// Invariant: Authenticated is true iff both Username and Token are non-empty.
// A Session is either fully populated or fully empty, never partial.
type Session struct {
	// Authenticated reports whether a complete credential is present.
	Authenticated bool
	// Username is the login name of the authenticated user. Empty when
	// unauthenticated.
	Username string
	// FirstName is the user's given name. Optional even when authenticated.
	FirstName string
	// LastName is the user's family name. Optional even when authenticated.
	LastName string
	// Token is the bearer token presented to backend services.
	Token string
	// Version increases on every session transition (login, logout).
	// In-flight gateway responses are tagged with the version they were
	// issued against and discarded when it has moved on.
	Version uint64
}

// Identity returns the identity portion of the session.
func (s Session) Identity() auth.Identity {
	return auth.Identity{
		Username:  s.Username,
		FirstName: s.FirstName,
		LastName:  s.LastName,
	}
}

// DisplayName returns "First Last" when available, else the username.
func (s Session) DisplayName() string {
	name := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if name == "" {
		return s.Username
	}
	return name
}
