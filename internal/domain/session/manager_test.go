package session

import (
	"errors"
	"testing"

	"github.com/campuslink/campuslink/internal/domain/auth"
)

// fakeStore is a minimal in-memory CredentialStore for manager tests.
type fakeStore struct {
	cred     *Credential
	saveErr  error
	clearErr error
	loadErr  error
}

func (f *fakeStore) Save(cred Credential) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	c := cred
	f.cred = &c
	return nil
}

func (f *fakeStore) Load() (Credential, error) {
	if f.loadErr != nil {
		return Credential{}, f.loadErr
	}
	if f.cred == nil || !f.cred.Valid() {
		return Credential{}, ErrNoCredential
	}
	return *f.cred, nil
}

func (f *fakeStore) Clear() error {
	f.cred = nil
	return f.clearErr
}

func TestManagerHydrateEmptyStore(t *testing.T) {
	t.Parallel()

	m := NewManager(&fakeStore{}, nil)
	sess := m.Hydrate()

	if sess.Authenticated {
		t.Error("Hydrate() on empty store should yield unauthenticated session")
	}
	if sess.Username != "" || sess.Token != "" {
		t.Errorf("empty session has residual fields: %+v", sess)
	}
}

func TestManagerHydrateTokenOnly(t *testing.T) {
	t.Parallel()

	// A token without a username must not authenticate (strict rule).
	store := &fakeStore{cred: &Credential{Token: "abc"}}
	m := NewManager(store, nil)

	sess := m.Hydrate()
	if sess.Authenticated {
		t.Error("token-only credential must hydrate to unauthenticated")
	}
}

func TestManagerHydrateUsernameOnly(t *testing.T) {
	t.Parallel()

	store := &fakeStore{cred: &Credential{Username: "jsmith"}}
	m := NewManager(store, nil)

	sess := m.Hydrate()
	if sess.Authenticated {
		t.Error("username-only credential must hydrate to unauthenticated")
	}
}

func TestManagerHydrateValidCredential(t *testing.T) {
	t.Parallel()

	store := &fakeStore{cred: &Credential{
		Username:  "jsmith",
		Token:     "abc",
		FirstName: "Jane",
		LastName:  "Smith",
	}}
	m := NewManager(store, nil)

	sess := m.Hydrate()
	if !sess.Authenticated {
		t.Fatal("valid credential should hydrate to authenticated")
	}
	if sess.Username != "jsmith" || sess.Token != "abc" {
		t.Errorf("session = %+v, want jsmith/abc", sess)
	}
	if sess.DisplayName() != "Jane Smith" {
		t.Errorf("DisplayName() = %q, want %q", sess.DisplayName(), "Jane Smith")
	}
}

func TestManagerHydrateLoadError(t *testing.T) {
	t.Parallel()

	// An I/O failure hydrates to logged-out, never panics or propagates.
	store := &fakeStore{loadErr: errors.New("disk on fire")}
	m := NewManager(store, nil)

	sess := m.Hydrate()
	if sess.Authenticated {
		t.Error("load error should yield unauthenticated session")
	}
}

func TestManagerCompleteLogin(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	m := NewManager(store, nil)
	m.Hydrate()

	v := m.BeginLogin()
	sess, err := m.CompleteLogin(v, auth.Identity{Username: "jsmith"}, "abc")
	if err != nil {
		t.Fatalf("CompleteLogin() error: %v", err)
	}
	if !sess.Authenticated || sess.Username != "jsmith" {
		t.Errorf("session = %+v, want authenticated jsmith", sess)
	}
	if store.cred == nil || store.cred.Token != "abc" {
		t.Error("CompleteLogin did not persist the credential")
	}
	if sess.Version == v {
		t.Error("CompleteLogin should advance the session version")
	}
}

func TestManagerCompleteLoginStale(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	m := NewManager(store, nil)
	m.Hydrate()

	// Login issued at version V1...
	v := m.BeginLogin()

	// ...then a logout advances the session to V2 before the response lands.
	if _, err := m.Logout(); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}

	sess, err := m.CompleteLogin(v, auth.Identity{Username: "jsmith"}, "abc")
	if !errors.Is(err, ErrStaleLogin) {
		t.Fatalf("CompleteLogin() error = %v, want ErrStaleLogin", err)
	}
	if sess.Authenticated {
		t.Error("stale login must not be applied")
	}
	if store.cred != nil {
		t.Error("stale login must not persist a credential")
	}
}

func TestManagerCompleteLoginIncompleteIdentity(t *testing.T) {
	t.Parallel()

	m := NewManager(&fakeStore{}, nil)
	v := m.BeginLogin()

	if _, err := m.CompleteLogin(v, auth.Identity{}, "abc"); err == nil {
		t.Error("CompleteLogin with empty username should fail")
	}
	if _, err := m.CompleteLogin(v, auth.Identity{Username: "jsmith"}, ""); err == nil {
		t.Error("CompleteLogin with empty token should fail")
	}
	if m.Current().Authenticated {
		t.Error("failed login must leave the session unauthenticated")
	}
}

func TestManagerLogoutClearsEvenOnStoreError(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		cred:     &Credential{Username: "jsmith", Token: "abc"},
		clearErr: errors.New("partial clear"),
	}
	m := NewManager(store, nil)
	m.Hydrate()

	sess, err := m.Logout()
	if err == nil {
		t.Error("Logout() should surface the store error")
	}
	if sess.Authenticated {
		t.Error("Logout() must reset the in-memory session even when Clear fails")
	}
}

func TestManagerSaveFailureLeavesSessionUnchanged(t *testing.T) {
	t.Parallel()

	store := &fakeStore{saveErr: errors.New("readonly fs")}
	m := NewManager(store, nil)
	v := m.BeginLogin()

	sess, err := m.CompleteLogin(v, auth.Identity{Username: "jsmith"}, "abc")
	if err == nil {
		t.Fatal("CompleteLogin() should fail when the store cannot persist")
	}
	if sess.Authenticated || m.Current().Authenticated {
		t.Error("session must stay unauthenticated when the save fails")
	}
}
