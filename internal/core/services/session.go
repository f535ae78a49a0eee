package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

// Ensure SessionStore implements the interface.
var _ driving.SessionService = (*SessionStore)(nil)

// SessionStore owns the authenticated session record and its persistence.
// Token and identity always move together; there is no way to set or
// clear one without the other.
type SessionStore struct {
	authAPI driven.AuthAPI
	record  driven.SessionRecordStore

	mu         sync.Mutex
	session    domain.Session
	rehydrated bool
}

// NewSessionStore creates a session store backed by the given auth API and
// durable record store.
func NewSessionStore(authAPI driven.AuthAPI, record driven.SessionRecordStore) *SessionStore {
	return &SessionStore{
		authAPI: authAPI,
		record:  record,
	}
}

// Login exchanges credentials for a session, stores it in memory, and
// persists it synchronously so a restart restores it without a network
// round trip.
func (s *SessionStore) Login(ctx context.Context, username, password string) (domain.Session, error) {
	session, err := s.authAPI.Login(ctx, username, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if !session.Valid() {
		// The backend answered but the record is incomplete. Never store
		// a partial session.
		return domain.Session{}, fmt.Errorf("login: %w: incomplete session from backend", domain.ErrServiceUnavailable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	s.rehydrated = true

	if err := s.record.Save(session); err != nil {
		logger.Warn("Persisting session failed: %v", err)
	}

	logger.Info("Logged in as %s", session.Identity)
	return session, nil
}

// Logout clears both fields atomically and purges persisted storage.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.Session{}
	s.rehydrated = true

	if err := s.record.Clear(); err != nil {
		return fmt.Errorf("clearing persisted session: %w", err)
	}

	logger.Info("Logged out")
	return nil
}

// Current returns the in-memory session, rehydrating once from persisted
// storage on first access after process start. A corrupt or partial
// persisted record degrades to logged out, never to an error.
func (s *SessionStore) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.rehydrated {
		s.rehydrated = true

		restored, err := s.record.Load()
		switch {
		case err != nil:
			logger.Warn("Session rehydration failed, staying logged out: %v", err)
		case restored.Valid():
			s.session = restored
			logger.Debug("Session rehydrated for %s", restored.Identity)
		case !restored.IsZero():
			// Partial record: one key without the other. Fail safe.
			logger.Warn("Discarding partial session record")
		}
	}

	return s.session
}

// Token returns the current bearer token.
func (s *SessionStore) Token() (string, error) {
	session := s.Current()
	if !session.Valid() {
		return "", domain.ErrAuthRequired
	}
	return session.Token, nil
}
