// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/components/input"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// View represents the conversation view: scrollback above, input below.
type View struct {
	styles *styles.Styles
	input  *input.PromptInput

	chat driving.ChatService
	ctx  context.Context

	scroll int // lines scrolled up from the bottom
	err    error
	width  int
	height int
	ready  bool
}

// NewView creates a new conversation view.
func NewView(s *styles.Styles, chat driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	in := input.NewPromptInput(s, "Tu", "fai una domanda...")
	in.Focus()

	return &View{
		styles: s,
		input:  in,
		chat:   chat,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the conversation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ScopeChanged:
		v.chat.AdoptScope(msg.Scope)
		v.scroll = 0
		return v, nil

	case messages.AnswerArrived:
		// Failures surface inside the history as assistant messages, so
		// an error here only covers rejected input.
		if msg.Err != nil {
			v.err = msg.Err
		}
		v.scroll = 0
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case tea.KeyEnter:
		return v.submit()

	case tea.KeyPgUp:
		v.scroll += v.scrollPage()
		return v, nil

	case tea.KeyPgDown:
		v.scroll -= v.scrollPage()
		if v.scroll < 0 {
			v.scroll = 0
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit sends the typed question off the update loop.
func (v *View) submit() (*View, tea.Cmd) {
	text := strings.TrimSpace(v.input.Value())
	if text == "" || v.chat.InFlight() {
		return v, nil
	}

	v.err = nil
	v.input.Reset()
	v.scroll = 0
	return v, func() tea.Msg {
		return messages.AnswerArrived{Err: v.chat.Send(v.ctx, text)}
	}
}

// scrollPage returns the scrollback page size.
func (v *View) scrollPage() int {
	page := v.height / 2
	if page < 1 {
		page = 1
	}
	return page
}

// View renders the conversation.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	header := v.styles.Title.Render("Chat normativa")
	scope := v.styles.Subtitle.Render(v.chat.Scope().Describe())
	sections = append(sections, header+"  "+scope, "")

	sections = append(sections, v.renderHistory())
	sections = append(sections, "")

	if v.chat.InFlight() {
		sections = append(sections, v.styles.Muted.Render("l'assistente sta scrivendo..."))
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("errore: "+v.err.Error()))
	}

	sections = append(sections, v.input.View())
	sections = append(sections, v.styles.Help.Render("[Enter] Invia  [PgUp/PgDn] Scorri  [Esc] Indietro"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHistory renders the visible slice of the scrollback.
func (v *View) renderHistory() string {
	lines := v.historyLines()
	window := v.height - 8
	if window < 3 {
		window = 3
	}

	if v.scroll > len(lines)-window {
		v.scroll = len(lines) - window
	}
	if v.scroll < 0 {
		v.scroll = 0
	}

	end := len(lines) - v.scroll
	start := end - window
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:end], "\n")
}

// historyLines flattens the conversation into styled, wrapped lines.
func (v *View) historyLines() []string {
	history := v.chat.History()
	lines := make([]string, 0, len(history)*3)
	wrap := lipgloss.NewStyle().Width(v.width - 2)

	for _, msg := range history {
		var label string
		switch msg.Role {
		case domain.RoleUser:
			label = v.styles.Success.Render("tu")
		default:
			label = v.styles.Subtitle.Render("assistente")
		}
		lines = append(lines, label)
		lines = append(lines, strings.Split(wrap.Render(msg.Text), "\n")...)
		for _, src := range msg.Sources {
			lines = append(lines, v.styles.Citation.Render("  ↳ "+formatSource(src)))
		}
		lines = append(lines, "")
	}
	return lines
}

// formatSource renders one citation line.
func formatSource(src domain.SourceRef) string {
	out := src.Filename
	if src.Page > 0 {
		out += fmt.Sprintf(", pag. %d", src.Page)
	}
	if src.Level != "" {
		out += " (" + src.Level + ")"
	}
	return out
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
