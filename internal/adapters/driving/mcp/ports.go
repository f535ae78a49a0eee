package mcp

import (
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers scoped questions.
	Chat driving.ChatService

	// Hierarchy resolves and enumerates the territorial hierarchy.
	Hierarchy driving.HierarchyService

	// Broker carries the shared scope; optional, adoption falls back to
	// the chat session's own scope when absent.
	Broker driving.ScopeBroker
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Hierarchy == nil {
		return ErrMissingHierarchyService
	}
	return nil
}
