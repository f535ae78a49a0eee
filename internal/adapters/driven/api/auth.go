package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
)

// Ensure AuthClient implements the interface.
var _ driven.AuthAPI = (*AuthClient)(nil)

// AuthClient exchanges credentials for a bearer token at the backend's
// OAuth2 password-grant token endpoint.
type AuthClient struct {
	client *Client
	conf   *oauth2.Config
}

// NewAuthClient creates an auth adapter over the shared backend client.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{
		client: client,
		conf: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  client.BaseURL() + "/api/auth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// Login submits the credentials as a password grant. The backend knows
// users by name only, so the identity of the resulting session is the
// username that was accepted.
func (a *AuthClient) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, fmt.Errorf("login: %w: username and password are required", domain.ErrInvalidInput)
	}

	// Route the token exchange through the shared transport so the rate
	// limit and timeout apply to it as well.
	if err := a.client.limiter.Wait(ctx); err != nil {
		return domain.Session{}, fmt.Errorf("login: rate limit: %w", err)
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client.http)

	tok, err := a.conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			switch retrieveErr.Response.StatusCode {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
				return domain.Session{}, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
			}
			return domain.Session{}, fmt.Errorf("login: %w (status %d)",
				domain.ErrServiceUnavailable, retrieveErr.Response.StatusCode)
		}
		return domain.Session{}, fmt.Errorf("login: %w: %v", domain.ErrServiceUnavailable, err)
	}

	if tok.AccessToken == "" {
		return domain.Session{}, fmt.Errorf("login: %w: empty token in response", domain.ErrServiceUnavailable)
	}

	return domain.Session{Token: tok.AccessToken, Identity: username}, nil
}
