// Package login provides the sign-in view for the TUI.
package login

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/components/input"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// field identifies which input currently has focus.
type field int

const (
	fieldUsername field = iota
	fieldPassword
)

// View represents the sign-in view.
type View struct {
	styles   *styles.Styles
	username *input.PromptInput
	password *input.PromptInput

	sessions driving.SessionService
	ctx      context.Context

	focus      field
	submitting bool
	err        error
	width      int
	height     int
	ready      bool
}

// NewView creates a new sign-in view.
func NewView(s *styles.Styles, sessions driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	username := input.NewPromptInput(s, "Utente", "nome utente")
	password := input.NewPasswordInput(s, "Password")
	username.Focus()

	return &View{
		styles:   s,
		username: username,
		password: password,
		sessions: sessions,
		ctx:      context.Background(),
		focus:    fieldUsername,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.username.Init()
}

// Update handles messages for the sign-in view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LoginCompleted:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			v.password.Reset()
			v.focus = fieldPassword
			v.password.Focus()
			return v, nil
		}
		v.err = nil
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v.forward(msg)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		v.toggleFocus()
		return v, nil

	case tea.KeyEnter:
		if v.focus == fieldUsername {
			v.toggleFocus()
			return v, nil
		}
		return v.submit()
	}

	return v.forward(msg)
}

// toggleFocus moves focus between the two fields.
func (v *View) toggleFocus() {
	if v.focus == fieldUsername {
		v.focus = fieldPassword
		v.username.Blur()
		v.password.Focus()
		return
	}
	v.focus = fieldUsername
	v.password.Blur()
	v.username.Focus()
}

// submit runs the credential exchange off the update loop.
func (v *View) submit() (*View, tea.Cmd) {
	username := v.username.Value()
	password := v.password.Value()
	if username == "" || password == "" {
		return v, nil
	}

	v.submitting = true
	v.err = nil
	return v, func() tea.Msg {
		session, err := v.sessions.Login(v.ctx, username, password)
		return messages.LoginCompleted{Session: session, Err: err}
	}
}

// forward routes a message to the focused input.
func (v *View) forward(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	if v.focus == fieldUsername {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

// View renders the sign-in view.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	sections = append(sections, v.styles.Title.Render("Urbanista"), "")
	sections = append(sections, v.styles.Muted.Render("Accedi per continuare"), "")
	sections = append(sections, v.username.View())
	sections = append(sections, v.password.View())

	if v.submitting {
		sections = append(sections, "", v.styles.Muted.Render("accesso in corso..."))
	}
	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("errore: "+v.err.Error()))
	}

	sections = append(sections, "", v.styles.Help.Render("[Tab] Campo  [Enter] Accedi  [Ctrl+C] Esci"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.username.SetWidth(width / 2)
	v.password.SetWidth(width / 2)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Submitting reports whether a credential exchange is outstanding.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the last sign-in error, if any.
func (v *View) Err() error {
	return v.err
}
