// Package memory provides in-memory implementations of outbound ports.
package memory

import (
	"sync"

	"github.com/campuslink/campuslink/internal/domain/session"
)

// CredentialStore implements session.CredentialStore with an in-memory
// record. Thread-safe. For tests and ephemeral (no-persistence) runs.
type CredentialStore struct {
	mu   sync.Mutex
	cred *session.Credential
}

// NewCredentialStore creates an empty in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Save stores a copy of the credential.
func (s *CredentialStore) Save(cred session.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cred
	s.cred = &c
	return nil
}

// Load returns the stored credential, or session.ErrNoCredential when
// empty or invalid. A partial record is treated as absent, matching the
// durable store.
func (s *CredentialStore) Load() (session.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred == nil || !s.cred.Valid() {
		return session.Credential{}, session.ErrNoCredential
	}
	return *s.cred, nil
}

// Clear removes the stored credential.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = nil
	return nil
}

// Compile-time interface verification.
var _ session.CredentialStore = (*CredentialStore)(nil)
