package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionRecordStore = (*SessionStore)(nil)

// sessionFile is the on-disk record: a single [auth] table whose two
// fields are always written together.
type sessionFile struct {
	Auth struct {
		Token    string `toml:"token"`
		Identity string `toml:"identity"`
	} `toml:"auth"`
}

// SessionStore persists the session record as a TOML file in the
// urbanista config directory, separate from config.toml so clearing the
// session never touches configuration.
type SessionStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSessionStore creates a session store. If configDir is empty,
// defaults to ~/.urbanista/session.toml.
func NewSessionStore(configDir string) (*SessionStore, error) {
	dir, err := resolveConfigDir(configDir)
	if err != nil {
		return nil, err
	}
	return &SessionStore{filePath: filepath.Join(dir, "session.toml")}, nil
}

// Load reads the persisted record. A missing, unreadable, or partially
// written record yields a zero session and a nil error: rehydration must
// degrade to logged out, never crash.
func (s *SessionStore) Load() (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Session record unreadable, treating as logged out: %v", err)
		}
		return domain.Session{}, nil
	}

	var rec sessionFile
	if err := toml.Unmarshal(data, &rec); err != nil {
		logger.Warn("Session record corrupt, treating as logged out: %v", err)
		return domain.Session{}, nil
	}

	session := domain.Session{Token: rec.Auth.Token, Identity: rec.Auth.Identity}
	if !session.Valid() {
		return domain.Session{}, nil
	}
	return session, nil
}

// Save persists the record synchronously, both fields in one write.
func (s *SessionStore) Save(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec sessionFile
	rec.Auth.Token = session.Token
	rec.Auth.Identity = session.Identity

	data, err := toml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

// Clear purges the persisted record.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session record: %w", err)
	}
	return nil
}

// Path returns the session record file path.
func (s *SessionStore) Path() string {
	return s.filePath
}
