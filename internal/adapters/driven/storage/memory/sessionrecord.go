package memory

import (
	"sync"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
)

// Ensure SessionRecord implements the interface.
var _ driven.SessionRecordStore = (*SessionRecord)(nil)

// SessionRecord is an in-memory implementation of driven.SessionRecordStore
// for testing. It keeps the token and identity keys separately so tests
// can simulate a partially written record.
type SessionRecord struct {
	mu       sync.Mutex
	token    string
	identity string
}

// NewSessionRecord creates an empty in-memory session record.
func NewSessionRecord() *SessionRecord {
	return &SessionRecord{}
}

// Load reads the record. A partial record is returned as-is; the session
// store is responsible for treating it as logged out.
func (r *SessionRecord) Load() (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.Session{Token: r.token, Identity: r.identity}, nil
}

// Save persists both keys together.
func (r *SessionRecord) Save(session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = session.Token
	r.identity = session.Identity
	return nil
}

// Clear purges both keys.
func (r *SessionRecord) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = ""
	r.identity = ""
	return nil
}

// Corrupt overwrites a single key, simulating a partially written record.
// Test helper only.
func (r *SessionRecord) Corrupt(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
	r.identity = ""
}
