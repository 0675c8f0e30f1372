// Package credfile persists the session credential to the local profile
// directory. It provides atomic writes (write-tmp-then-rename), file
// locking (flock for cross-process, mutex for in-process), 0600
// permissions, and unification of the legacy key layout that earlier
// client revisions left behind.
package credfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/campuslink/campuslink/internal/domain/session"
)

const (
	// credentialFileName is the unified credential record.
	credentialFileName = "credentials.json"

	// Legacy artifacts from earlier revisions. One generation wrote the
	// token and username as separate flat files; another serialized a
	// user object. Load falls back to them; Clear always removes them.
	legacyTokenFile    = "token"
	legacyUsernameFile = "username"
	legacyUserFile     = "user.json"
)

// credentialFile is the on-disk schema of credentials.json.
type credentialFile struct {
	// Version is the schema version for forward compatibility. Currently "1".
	Version string `json:"version"`

	// Username is the login name.
	Username string `json:"username"`

	// Token is the bearer token. Stored in plaintext: the client must
	// replay it verbatim, so it cannot be hashed at rest. The 0600 file
	// mode is the only protection.
	Token string `json:"token"`

	// FirstName and LastName are optional display-name fields.
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	// UpdatedAt is when the credential was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// legacyUserFileSchema mirrors the old serialized user object.
type legacyUserFileSchema struct {
	Username  string `json:"username"`
	FirstName string `json:"Fname"`
	LastName  string `json:"Lname"`
}

// Store implements session.CredentialStore on a directory of files.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

// New creates a Store rooted at dir. The directory is created on first
// Save, not here, so a read-only run never mutates the filesystem.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// Save persists the full credential in one atomic write: all fields land
// together or not at all, so no reader can ever observe a token without
// its username.
func (s *Store) Save(cred session.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	record := credentialFile{
		Version:   "1",
		Username:  cred.Username,
		Token:     cred.Token,
		FirstName: cred.FirstName,
		LastName:  cred.LastName,
		UpdatedAt: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return err
	}

	// Ensure 0600 after rename as a safety net.
	path := filepath.Join(s.dir, credentialFileName)
	if err := os.Chmod(path, 0600); err != nil {
		s.logger.Warn("failed to set permissions on credential file", "error", err)
	}

	s.logger.Debug("credential saved", "path", path)
	return nil
}

// Load reads the persisted credential. It tolerates malformed or partial
// data by reporting session.ErrNoCredential rather than failing, and
// falls back to the legacy key layout when the unified file is absent.
func (s *Store) Load() (session.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, credentialFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.loadLegacy()
		}
		return session.Credential{}, fmt.Errorf("read credential file: %w", err)
	}

	// Warn if the file is readable by group/other. Skip on Windows where
	// Unix permission bits are not meaningful.
	if runtime.GOOS != "windows" {
		if info, statErr := os.Stat(path); statErr == nil {
			if mode := info.Mode().Perm(); mode&0077 != 0 {
				s.logger.Warn("credential file has too-open permissions, should be 0600",
					"path", path, "current_mode", fmt.Sprintf("%04o", mode))
			}
		}
	}

	var record credentialFile
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("credential file is malformed, treating as logged out", "path", path)
		return session.Credential{}, session.ErrNoCredential
	}

	cred := session.Credential{
		Username:  record.Username,
		Token:     record.Token,
		FirstName: record.FirstName,
		LastName:  record.LastName,
	}
	if !cred.Valid() {
		return session.Credential{}, session.ErrNoCredential
	}
	return cred, nil
}

// loadLegacy assembles a credential from the pre-unification layout:
// token and username flat files, optionally enriched by user.json.
// Partial legacy state (token without username, or the reverse) is
// reported as absent.
func (s *Store) loadLegacy() (session.Credential, error) {
	token := s.readFlatFile(legacyTokenFile)
	username := s.readFlatFile(legacyUsernameFile)

	var names legacyUserFileSchema
	if data, err := os.ReadFile(filepath.Join(s.dir, legacyUserFile)); err == nil {
		// Malformed user.json only costs the display name.
		_ = json.Unmarshal(data, &names)
		if username == "" {
			username = names.Username
		}
	}

	cred := session.Credential{
		Username:  username,
		Token:     token,
		FirstName: names.FirstName,
		LastName:  names.LastName,
	}
	if !cred.Valid() {
		return session.Credential{}, session.ErrNoCredential
	}
	s.logger.Info("loaded credential from legacy key layout", "dir", s.dir)
	return cred, nil
}

// readFlatFile returns the trimmed contents of a single-value legacy file.
func (s *Store) readFlatFile(name string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Clear removes every credential artifact the store has ever written,
// current and legacy, so no stale partial credential can resurrect a
// session after logout. Files that are already absent are not an error;
// the first real failure is returned after all removals were attempted.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, name := range []string{
		credentialFileName,
		credentialFileName + ".tmp",
		legacyTokenFile,
		legacyUsernameFile,
		legacyUserFile,
	} {
		err := os.Remove(filepath.Join(s.dir, name))
		if err != nil && !errors.Is(err, os.ErrNotExist) && firstErr == nil {
			firstErr = fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return firstErr
}

// lock acquires the cross-process file lock, returning an unlock func.
func (s *Store) lock() (func(), error) {
	lockPath := filepath.Join(s.dir, credentialFileName+".lock")
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := flockLock(lockFile.Fd()); err != nil {
		_ = lockFile.Close()
		return nil, fmt.Errorf("acquire file lock: %w", err)
	}
	return func() {
		_ = flockUnlock(lockFile.Fd())
		_ = lockFile.Close()
	}, nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it over
// the credential file. On any error the temp file is cleaned up.
func (s *Store) writeAtomic(data []byte) error {
	path := filepath.Join(s.dir, credentialFileName)
	tmpPath := path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to credential file: %w", err)
	}
	return nil
}

// Compile-time interface verification.
var _ session.CredentialStore = (*Store)(nil)
