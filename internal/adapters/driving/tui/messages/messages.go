// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the credential prompt.
	ViewLogin ViewType = iota
	// ViewMenu is the main navigation menu.
	ViewMenu
	// ViewScope is the territorial selector.
	ViewScope
	// ViewChat is the assistant conversation.
	ViewChat
	// ViewUpload is the document upload queue.
	ViewUpload
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewMenu:
		return "menu"
	case ViewScope:
		return "scope"
	case ViewChat:
		return "chat"
	case ViewUpload:
		return "upload"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// LoginCompleted carries the outcome of a login attempt.
type LoginCompleted struct {
	Session domain.Session
	Err     error
}

// LoggedOut signals the session was cleared.
type LoggedOut struct{}

// HierarchyLoaded signals the territorial dataset finished loading.
type HierarchyLoaded struct {
	Err error
}

// ScopeChanged carries the canonical scope after another surface
// published it.
type ScopeChanged struct {
	Scope domain.Scope
}

// AnswerArrived signals the chat send finished; the conversation is read
// back from the service.
type AnswerArrived struct {
	Err error
}

// UploadsUpdated signals the upload queue changed state.
type UploadsUpdated struct {
	Bucket domain.Level
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
