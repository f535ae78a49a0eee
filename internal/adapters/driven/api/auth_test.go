package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, RequestsPerSecond: 1000}), srv
}

func TestAuthClient_Login_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "segreto", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))

	session, err := NewAuthClient(client).Login(context.Background(), "alice", "segreto")

	require.NoError(t, err)
	assert.Equal(t, domain.Session{Token: "tok-123", Identity: "alice"}, session)
	assert.True(t, session.Valid())
}

func TestAuthClient_Login_RejectedCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Credenziali non valide"}`))
	}))

	_, err := NewAuthClient(client).Login(context.Background(), "alice", "sbagliata")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestAuthClient_Login_ServerFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := NewAuthClient(client).Login(context.Background(), "alice", "segreto")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestAuthClient_Login_TransportFailure(t *testing.T) {
	// A server that has already been shut down stands in for an
	// unreachable backend.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(Config{BaseURL: srv.URL, RequestsPerSecond: 1000})

	_, err := NewAuthClient(client).Login(context.Background(), "alice", "segreto")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestAuthClient_Login_EmptyCredentialsRejectedLocally(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	_, err := NewAuthClient(client).Login(context.Background(), "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, called)
}

func TestAuthClient_Login_EmptyTokenTreatedAsFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"","token_type":"bearer"}`))
	}))

	_, err := NewAuthClient(client).Login(context.Background(), "alice", "segreto")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}
