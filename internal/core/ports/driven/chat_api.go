package driven

import (
	"context"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// ChatAPI sends scope-qualified questions to the assistant backend.
type ChatAPI interface {
	// Ask submits the query with the given bearer token and returns the
	// assistant's answer with its ordered citation list.
	Ask(ctx context.Context, token string, query domain.ChatQuery) (domain.ChatAnswer, error)
}
