package driven

import (
	"context"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// AuthAPI exchanges credentials for an authenticated session with the
// backend's token endpoint.
type AuthAPI interface {
	// Login submits the credentials and returns the resulting session.
	// Rejected credentials yield domain.ErrInvalidCredentials; transport
	// and server failures yield domain.ErrServiceUnavailable so callers
	// can tell the two apart.
	Login(ctx context.Context, username, password string) (domain.Session, error)
}
