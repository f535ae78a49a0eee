package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

func TestChatClient_Ask_SendsScopeAndHistory(t *testing.T) {
	var got chatRequest
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat/message", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": "Il PRG di Tarquinia prevede...",
			"sources": [
				{"filename": "prg_tarquinia.pdf", "page": 12,
				 "normative_level": "comunale", "content_preview": "Art. 4..."}
			]
		}`))
	}))

	query := domain.ChatQuery{
		Message: "Cosa prevede il piano regolatore?",
		History: []domain.ChatMessage{
			{Role: domain.RoleUser, Text: "Ciao"},
			{Role: domain.RoleAssistant, Text: "Ciao! Come posso aiutarti?"},
		},
		Scope: domain.NewScope("Lazio", "Viterbo", "Tarquinia"),
	}

	answer, err := NewChatClient(client).Ask(context.Background(), "tok-123", query)

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "Cosa prevede il piano regolatore?", got.Message)
	require.Len(t, got.History, 2)
	assert.Equal(t, "user", got.History[0].Role)
	assert.Equal(t, "assistant", got.History[1].Role)
	assert.Equal(t, "Tarquinia", got.Municipality)
	assert.Equal(t, "Viterbo", got.Province)
	assert.Equal(t, "Lazio", got.Region)

	assert.Equal(t, "Il PRG di Tarquinia prevede...", answer.Text)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, domain.SourceRef{
		Filename: "prg_tarquinia.pdf",
		Page:     12,
		Level:    "comunale",
		Excerpt:  "Art. 4...",
	}, answer.Sources[0])
}

func TestChatClient_Ask_NationalScopeOmitsTerritoryFields(t *testing.T) {
	var raw map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"ok","sources":[]}`))
	}))

	query := domain.ChatQuery{Message: "norme nazionali?", Scope: domain.NationalScope()}
	_, err := NewChatClient(client).Ask(context.Background(), "tok", query)

	require.NoError(t, err)
	assert.NotContains(t, raw, "municipality")
	assert.NotContains(t, raw, "province")
	assert.NotContains(t, raw, "region")
}

func TestChatClient_Ask_ExpiredTokenMapsToAuthRequired(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
	}))

	_, err := NewChatClient(client).Ask(context.Background(), "scaduto", domain.ChatQuery{Message: "ciao"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Contains(t, err.Error(), "Not authenticated")
}

func TestChatClient_Ask_ServerFailureMapsToServiceUnavailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := NewChatClient(client).Ask(context.Background(), "tok", domain.ChatQuery{Message: "ciao"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}
