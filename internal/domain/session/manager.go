package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/campuslink/campuslink/internal/domain/auth"
)

// ErrStaleLogin is returned by CompleteLogin when the session version has
// advanced since the login request was issued. The late response must not
// overwrite the newer session state.
var ErrStaleLogin = errors.New("stale login response")

// Manager owns the one Session that exists process-wide. All reads go
// through Current; all transitions go through Hydrate, CompleteLogin and
// Logout, each of which re-derives the session from the credential store
// rather than trusting an independent in-memory copy.
type Manager struct {
	store  CredentialStore
	logger *slog.Logger

	mu      sync.Mutex
	current Session
}

// NewManager creates a Manager over the given credential store.
// The session starts empty; call Hydrate at startup.
func NewManager(store CredentialStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// Hydrate reads the credential store and derives the session from it.
// A missing, partial or malformed credential yields the empty session;
// hydration never fails. The existing session version is preserved so
// that in-flight requests tagged before a reload remain comparable.
func (m *Manager) Hydrate() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	cred, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoCredential) {
			m.logger.Warn("credential load failed, treating as logged out", "error", err)
		}
		m.current = Session{Version: m.current.Version}
		return m.current
	}
	if !cred.Valid() {
		// Defense in depth: stores should already report partial records
		// as ErrNoCredential.
		m.current = Session{Version: m.current.Version}
		return m.current
	}

	m.current = Session{
		Authenticated: true,
		Username:      cred.Username,
		FirstName:     cred.FirstName,
		LastName:      cred.LastName,
		Token:         cred.Token,
		Version:       m.current.Version,
	}
	return m.current
}

// Current returns the session snapshot.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// BeginLogin returns the version tag a login request must carry.
// CompleteLogin discards the response if the session has transitioned
// since this tag was issued.
func (m *Manager) BeginLogin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Version
}

// CompleteLogin applies a successful gateway login: the credential is
// persisted atomically and the session becomes authenticated. Returns
// ErrStaleLogin when issuedAt no longer matches the current version
// (e.g. a logout happened while the request was in flight).
func (m *Manager) CompleteLogin(issuedAt uint64, identity auth.Identity, token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Version != issuedAt {
		m.logger.Info("discarding stale login response",
			"username", identity.Username,
			"issued_version", issuedAt,
			"current_version", m.current.Version)
		return m.current, ErrStaleLogin
	}
	if !identity.Valid() || token == "" {
		return m.current, errors.New("gateway returned incomplete identity")
	}

	cred := Credential{
		Username:  identity.Username,
		Token:     token,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	}
	if err := m.store.Save(cred); err != nil {
		return m.current, err
	}

	m.current = Session{
		Authenticated: true,
		Username:      cred.Username,
		FirstName:     cred.FirstName,
		LastName:      cred.LastName,
		Token:         cred.Token,
		Version:       m.current.Version + 1,
	}
	return m.current, nil
}

// Logout clears the credential store and resets the session. The session
// is reset even when the store clear fails; the error is returned so
// callers can log it, but no stale identity survives in memory.
func (m *Manager) Logout() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.Clear()
	m.current = Session{Version: m.current.Version + 1}
	return m.current, err
}
