package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
)

// Ensure ChatClient implements the interface.
var _ driven.ChatAPI = (*ChatClient)(nil)

// ChatClient sends scope-qualified questions to the backend's chat
// endpoint.
type ChatClient struct {
	client *Client
}

// NewChatClient creates a chat adapter over the shared backend client.
func NewChatClient(client *Client) *ChatClient {
	return &ChatClient{client: client}
}

// chatRequest is the /api/chat/message request format. The territorial
// qualifiers are flat optional fields, not a nested object.
type chatRequest struct {
	Message      string           `json:"message"`
	History      []historyMessage `json:"history"`
	Municipality string           `json:"municipality,omitempty"`
	Province     string           `json:"province,omitempty"`
	Region       string           `json:"region,omitempty"`
}

// historyMessage is one prior turn in the wire format.
type historyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the /api/chat/message response format.
type chatResponse struct {
	Response string `json:"response"`
	Sources  []struct {
		Filename       string `json:"filename"`
		Page           int    `json:"page"`
		NormativeLevel string `json:"normative_level"`
		ContentPreview string `json:"content_preview"`
	} `json:"sources"`
}

// Ask submits the query and returns the assistant's answer with its
// citation list.
func (c *ChatClient) Ask(ctx context.Context, token string, query domain.ChatQuery) (domain.ChatAnswer, error) {
	history := make([]historyMessage, 0, len(query.History))
	for _, msg := range query.History {
		history = append(history, historyMessage{
			Role:    string(msg.Role),
			Content: msg.Text,
		})
	}

	reqBody := chatRequest{
		Message:      query.Message,
		History:      history,
		Municipality: query.Scope.Municipality,
		Province:     query.Scope.Province,
		Region:       query.Scope.Region,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return domain.ChatAnswer{}, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := c.client.newRequest(ctx, http.MethodPost, "/api/chat/message", token, bytes.NewReader(jsonBody))
	if err != nil {
		return domain.ChatAnswer{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.do(req)
	if err != nil {
		return domain.ChatAnswer{}, fmt.Errorf("chat: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ChatAnswer{}, statusError("chat", resp)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return domain.ChatAnswer{}, fmt.Errorf("decode chat response: %w", err)
	}

	answer := domain.ChatAnswer{Text: chatResp.Response}
	for _, src := range chatResp.Sources {
		answer.Sources = append(answer.Sources, domain.SourceRef{
			Filename: src.Filename,
			Page:     src.Page,
			Level:    src.NormativeLevel,
			Excerpt:  src.ContentPreview,
		})
	}
	return answer, nil
}
