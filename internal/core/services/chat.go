package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

// Ensure ChatSession implements the interface.
var _ driving.ChatService = (*ChatSession)(nil)

// greeting opens every conversation.
const greeting = "Benvenuto! Sono l'assistente normativo. Seleziona un territorio e fammi una domanda sulle normative urbanistiche che lo riguardano."

// ChatSession holds one append-only conversation with the assistant
// backend. At most one send is outstanding at a time; a second send while
// one is in flight is rejected rather than cancelling the prior one.
type ChatSession struct {
	api     driven.ChatAPI
	session driving.SessionService

	mu          sync.Mutex
	history     []domain.ChatMessage
	scope       domain.Scope
	lastAdopted *domain.Scope
	inFlight    bool
}

// NewChatSession creates a session opened by the synthetic assistant
// greeting, scoped nationally until a scope is adopted or followed.
func NewChatSession(api driven.ChatAPI, session driving.SessionService) *ChatSession {
	c := &ChatSession{
		api:     api,
		session: session,
		scope:   domain.NationalScope(),
	}
	c.history = append(c.history, assistantMessage(greeting, nil))
	return c
}

// FollowScope silently tracks the canonical scope as the session's query
// context. Wire it to the broker under a dedicated subscriber id; unlike
// AdoptScope it appends nothing.
func (c *ChatSession) FollowScope(scope domain.Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scope = scope
}

// AdoptScope makes the scope the session's working scope and appends one
// synthetic assistant acknowledgment naming the territory. Re-adopting
// the same scope appends nothing, so a surface re-render cannot repeat
// the acknowledgment.
func (c *ChatSession) AdoptScope(scope domain.Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scope = scope
	if c.lastAdopted != nil && c.lastAdopted.Equal(scope) {
		return
	}
	adopted := scope
	c.lastAdopted = &adopted

	ack := fmt.Sprintf("D'accordo, lavoriamo su %s. Cosa vuoi sapere?", scope.Describe())
	c.history = append(c.history, assistantMessage(ack, nil))
}

// Send appends the user message optimistically, issues the authenticated
// scope-qualified query with the full prior history, and appends exactly
// one assistant message: the answer on success, a visible failure notice
// otherwise. The in-flight flag clears in all cases so the user can retry.
func (c *ChatSession) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrInvalidInput
	}

	token, err := c.session.Token()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return domain.ErrSendInFlight
	}
	c.inFlight = true

	query := domain.ChatQuery{
		Message: text,
		History: append([]domain.ChatMessage(nil), c.history...),
		Scope:   c.scope,
	}
	c.history = append(c.history, domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	})
	c.mu.Unlock()

	answer, askErr := c.api.Ask(ctx, token, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if askErr != nil {
		logger.Warn("Chat query failed: %v", askErr)
		notice := fmt.Sprintf("Non sono riuscito a rispondere: %v. Riprova tra poco.", askErr)
		c.history = append(c.history, assistantMessage(notice, nil))
		return nil
	}

	c.history = append(c.history, assistantMessage(answer.Text, answer.Sources))
	return nil
}

// History returns a copy of the conversation, oldest first.
func (c *ChatSession) History() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ChatMessage(nil), c.history...)
}

// Scope returns the session's working scope.
func (c *ChatSession) Scope() domain.Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope
}

// InFlight reports whether a send is outstanding.
func (c *ChatSession) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func assistantMessage(text string, sources []domain.SourceRef) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.RoleAssistant,
		Text:      text,
		Sources:   sources,
		CreatedAt: time.Now(),
	}
}
