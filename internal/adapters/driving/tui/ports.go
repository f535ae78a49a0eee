// Package tui provides the interactive terminal user interface for
// Urbanista. It implements a driving adapter following hexagonal
// architecture principles: every view works against the driving ports.
package tui

import (
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns the authenticated session.
	Session driving.SessionService

	// Hierarchy exposes the territorial hierarchy.
	Hierarchy driving.HierarchyService

	// Broker carries the shared scope across surfaces.
	Broker driving.ScopeBroker

	// Selector is the cascading territorial chooser.
	Selector driving.ScopeSelector

	// Uploads coordinates the per-level upload buckets.
	Uploads driving.UploadService

	// Chat holds the assistant conversation.
	Chat driving.ChatService
}

// NewPorts creates a Ports aggregate from the given services.
func NewPorts(
	session driving.SessionService,
	hierarchy driving.HierarchyService,
	broker driving.ScopeBroker,
	selector driving.ScopeSelector,
	uploads driving.UploadService,
	chat driving.ChatService,
) *Ports {
	return &Ports{
		Session:   session,
		Hierarchy: hierarchy,
		Broker:    broker,
		Selector:  selector,
		Uploads:   uploads,
		Chat:      chat,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Hierarchy == nil {
		return ErrMissingHierarchyService
	}
	if p.Broker == nil {
		return ErrMissingScopeBroker
	}
	if p.Selector == nil {
		return ErrMissingScopeSelector
	}
	if p.Uploads == nil {
		return ErrMissingUploadService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
