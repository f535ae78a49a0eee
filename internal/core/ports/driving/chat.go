package driving

import (
	"context"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// ChatService holds one conversation with the document-grounded assistant.
// History is append-only and opens with a synthetic assistant greeting.
type ChatService interface {
	// Send appends the user message optimistically, issues the
	// authenticated scope-qualified query, and appends one assistant
	// message with the answer. Blank input and sends attempted while one
	// is in flight are no-ops (domain.ErrInvalidInput and
	// domain.ErrSendInFlight respectively, with nothing appended).
	// Transport and server failures are converted into a visible
	// assistant message rather than returned; the in-flight flag clears
	// in all cases so the user can retry.
	Send(ctx context.Context, text string) error

	// History returns a copy of the conversation, oldest first.
	History() []domain.ChatMessage

	// AdoptScope makes the scope the session's working scope and appends
	// one synthetic assistant acknowledgment naming the territory, once
	// per distinct adoption.
	AdoptScope(scope domain.Scope)

	// Scope returns the session's working scope.
	Scope() domain.Scope

	// InFlight reports whether a send is outstanding.
	InFlight() bool
}
