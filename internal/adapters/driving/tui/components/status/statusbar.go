// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/keymap"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateSending  State = "sending"
	StateError    State = "error"
	StateHelp     State = "help"
)

// Bar displays the session identity, the active territory and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	identity string
	scope    string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the identity, territory and state.
func (s *Bar) renderLeft() string {
	parts := make([]string, 0, 3)
	if s.identity != "" {
		parts = append(parts, s.styles.Normal.Render(s.identity))
	} else {
		parts = append(parts, s.styles.Muted.Render("non connesso"))
	}
	if s.scope != "" {
		parts = append(parts, s.styles.Subtitle.Render(s.scope))
	}

	switch s.state {
	case StateThinking:
		parts = append(parts, s.styles.Muted.Render("sto pensando..."))
	case StateSending:
		parts = append(parts, s.styles.Muted.Render("invio in corso..."))
	case StateError:
		if s.message != "" {
			parts = append(parts, s.styles.Error.Render(fmt.Sprintf("errore: %s", s.message)))
		} else {
			parts = append(parts, s.styles.Error.Render("errore"))
		}
	case StateHelp:
		parts = append(parts, s.styles.Normal.Render("aiuto"))
	}

	return strings.Join(parts, s.styles.Muted.Render(" · "))
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateSending:
		bindings = s.keymap.UploadHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetIdentity sets the signed-in account shown on the left.
func (s *Bar) SetIdentity(identity string) {
	s.identity = identity
}

// Identity returns the displayed account.
func (s *Bar) Identity() string {
	return s.identity
}

// SetScope sets the territory description shown on the left.
func (s *Bar) SetScope(scope string) {
	s.scope = scope
}

// Scope returns the displayed territory description.
func (s *Bar) Scope() string {
	return s.scope
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
