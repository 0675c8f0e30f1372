// Package auth contains the domain types for authenticated identities.
package auth

import "strings"

// Identity represents a user identity as reported by the auth gateway.
// The gateway historically answered in two shapes — a bare
// {username, token} pair and a richer record with first/last name —
// so the display-name fields are optional and may be empty.
type Identity struct {
	// Username is the unique login name. Never empty for a valid identity.
	Username string
	// FirstName is the user's given name. Optional.
	FirstName string
	// LastName is the user's family name. Optional.
	LastName string
}

// DisplayName returns "First Last" when name fields are present,
// falling back to the username.
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Username
	}
	return name
}

// Valid reports whether the identity carries the minimum required data.
func (i Identity) Valid() bool {
	return i.Username != ""
}
