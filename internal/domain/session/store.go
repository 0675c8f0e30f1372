package session

import "errors"

// ErrNoCredential is returned by CredentialStore.Load when no usable
// credential is persisted. A malformed or partial record (token without
// username, or vice versa) is reported the same way — never as a crash.
var ErrNoCredential = errors.New("no stored credential")

// Credential is the durable representation of a session's identity and
// token. It is exclusively owned by the CredentialStore; the Manager holds
// a derived copy and always re-derives on hydration rather than caching
// independently.
type Credential struct {
	// Username is the login name.
	Username string
	// Token is the bearer token issued at login.
	Token string
	// FirstName is the user's given name. Optional.
	FirstName string
	// LastName is the user's family name. Optional.
	LastName string
}

// Valid reports whether the credential satisfies the session invariant:
// both username and token must be present. Presence of a username alone
// is not sufficient.
func (c Credential) Valid() bool {
	return c.Username != "" && c.Token != ""
}

// CredentialStore persists the Credential across process restarts.
// Implementations must write all fields in a single atomic operation and
// must remove every key they ever wrote on Clear, including legacy keys
// from earlier storage layouts.
type CredentialStore interface {
	// Save persists the full credential atomically.
	Save(cred Credential) error
	// Load returns the persisted credential, or ErrNoCredential if absent
	// or malformed.
	Load() (Credential, error)
	// Clear removes all persisted credential data. Best effort and total:
	// keys that are already absent are not an error.
	Clear() error
}
