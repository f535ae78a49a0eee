package driving

import (
	"context"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// SessionService owns the authenticated session value and its persistence.
// Token and identity are one atomic record: no operation exists that sets
// or clears one without the other.
type SessionService interface {
	// Login exchanges credentials for a session, stores it, and persists
	// it synchronously.
	Login(ctx context.Context, username, password string) (domain.Session, error)

	// Logout clears the in-memory session and purges persisted storage.
	Logout() error

	// Current returns the session, rehydrating once from persisted
	// storage on first access after process start. Returns a zero session
	// when logged out.
	Current() domain.Session

	// Token returns the current bearer token, or domain.ErrAuthRequired
	// when no session is present.
	Token() (string, error)
}
