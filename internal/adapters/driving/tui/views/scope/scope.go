// Package scope provides the cascading territory selector view for the TUI.
package scope

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/keymap"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// levelCount is the number of selectable levels below national.
const levelCount = 3

// View represents the cascading territory selector.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	hierarchy driving.HierarchyService
	selector  driving.ScopeSelector
	ctx       context.Context

	focus   int // 0 = regione, 1 = provincia, 2 = comune
	cursor  int
	loaded  bool
	loading bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new territory selector view.
func NewView(s *styles.Styles, km *keymap.KeyMap, hierarchy driving.HierarchyService, selector driving.ScopeSelector) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		hierarchy: hierarchy,
		selector:  selector,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init triggers the hierarchy load on first entry.
func (v *View) Init() tea.Cmd {
	if v.loaded || v.loading {
		return nil
	}
	v.loading = true
	return func() tea.Msg {
		return messages.HierarchyLoaded{Err: v.hierarchy.Load(v.ctx)}
	}
}

// Update handles messages for the selector view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HierarchyLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.loaded = true
		v.err = nil
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if !v.loaded {
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.cursor < len(v.focusedOptions())-1 {
			v.cursor++
		}
	case keymap.Matches(keyStr, v.keymap.NextLevel):
		if v.focus < levelCount-1 {
			v.focus++
			v.cursor = 0
		}
	case keymap.Matches(keyStr, v.keymap.PrevLevel):
		if v.focus > 0 {
			v.focus--
			v.cursor = 0
		}
	case keymap.Matches(keyStr, v.keymap.Select):
		return v.settle()
	case keymap.Matches(keyStr, v.keymap.Clear):
		return v.clear()
	}

	return v, nil
}

// settle commits the option under the cursor at the focused level.
func (v *View) settle() (*View, tea.Cmd) {
	options := v.focusedOptions()
	if v.cursor >= len(options) {
		return v, nil
	}
	choice := options[v.cursor]

	var err error
	switch v.focus {
	case 0:
		err = v.selector.SetRegion(choice)
	case 1:
		err = v.selector.SetProvince(choice)
	case 2:
		err = v.selector.SetMunicipality(choice)
	}
	if err != nil {
		v.err = err
		return v, nil
	}

	v.err = nil
	if v.focus < levelCount-1 {
		v.focus++
		v.cursor = 0
	}
	return v, v.announce()
}

// clear resets the focused level to its placeholder.
func (v *View) clear() (*View, tea.Cmd) {
	var err error
	switch v.focus {
	case 0:
		err = v.selector.SetRegion("")
	case 1:
		err = v.selector.SetProvince("")
	case 2:
		err = v.selector.SetMunicipality("")
	}
	if err != nil {
		v.err = err
		return v, nil
	}
	v.err = nil
	v.cursor = 0
	return v, v.announce()
}

// announce surfaces the settled selection so the app can refresh shared state.
func (v *View) announce() tea.Cmd {
	scope := v.selector.Selection()
	return func() tea.Msg {
		return messages.ScopeChanged{Scope: scope}
	}
}

// focusedOptions returns the choice list of the focused level.
func (v *View) focusedOptions() []string {
	selection := v.selector.Selection()
	switch v.focus {
	case 0:
		return v.hierarchy.Regions()
	case 1:
		return v.hierarchy.Provinces(selection.Region)
	case 2:
		return v.hierarchy.Municipalities(selection.Region, selection.Province)
	}
	return nil
}

// View renders the selector.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Territorio"), "")

	if v.loading {
		sections = append(sections, v.styles.Muted.Render("caricamento gerarchia territoriale..."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}
	if v.err != nil && !v.loaded {
		sections = append(sections, v.styles.Error.Render("errore: "+v.err.Error()))
		sections = append(sections, "", v.styles.Help.Render("[Esc] Indietro"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	selection := v.selector.Selection()
	sections = append(sections, v.renderLevelLine(0, "Regione", selection.Region))
	sections = append(sections, v.renderLevelLine(1, "Provincia", selection.Province))
	sections = append(sections, v.renderLevelLine(2, "Comune", selection.Municipality))
	sections = append(sections, "")
	sections = append(sections, v.styles.Subtitle.Render("Ambito: "+selection.Describe()))
	sections = append(sections, "")
	sections = append(sections, v.renderOptions())

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("errore: "+v.err.Error()))
	}

	sections = append(sections, "", v.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLevelLine renders one level header with its settled value.
func (v *View) renderLevelLine(level int, label, value string) string {
	if value == "" {
		value = "tutte"
	}
	line := fmt.Sprintf("%-10s %s", label+":", value)
	if level == v.focus {
		return v.styles.Selected.Render(" " + line + " ")
	}
	return v.styles.Normal.Render(" " + line + " ")
}

// renderOptions renders a scroll window over the focused choice list.
func (v *View) renderOptions() string {
	options := v.focusedOptions()
	if len(options) == 0 {
		return v.styles.Muted.Render("nessuna opzione disponibile")
	}

	window := v.height - 14
	if window < 3 {
		window = 3
	}
	start := 0
	if v.cursor >= window {
		start = v.cursor - window + 1
	}
	end := start + window
	if end > len(options) {
		end = len(options)
	}

	lines := make([]string, 0, window+1)
	for i := start; i < end; i++ {
		cursor := "  "
		style := v.styles.Normal
		if i == v.cursor {
			cursor = "> "
			style = v.styles.Selected
		}
		lines = append(lines, cursor+style.Render(options[i]))
	}
	if end < len(options) {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  ... altre %d", len(options)-end)))
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the keybinding hints.
func (v *View) renderHelp() string {
	hints := make([]string, 0, 6)
	for _, b := range v.keymap.SelectorHelp() {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Focus returns the focused level index.
func (v *View) Focus() int {
	return v.focus
}

// Cursor returns the cursor position within the focused choice list.
func (v *View) Cursor() int {
	return v.cursor
}

// Selection returns the selector's settled selection.
func (v *View) Selection() domain.Scope {
	return v.selector.Selection()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
