// Package upload provides the document upload view for the TUI.
package upload

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/components/input"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/keymap"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// View represents the upload view: one queue per normative level.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	path   *input.PromptInput

	uploads driving.UploadService
	ctx     context.Context

	bucket  int // index into domain.Levels()
	cursor  int // index into the visible task list
	typing  bool
	sending bool
	notice  string
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, km *keymap.KeyMap, uploads driving.UploadService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		path:    input.NewPromptInput(s, "File", "percorso del documento..."),
		uploads: uploads,
		ctx:     context.Background(),
		bucket:  len(domain.Levels()) - 1, // comunale by default
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.UploadsUpdated:
		v.sending = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.notice = "coda inviata"
		}
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.typing {
		var cmd tea.Cmd
		v.path, cmd = v.path.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.typing {
		return v.handleTypingKey(msg)
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keyStr == "a":
		v.typing = true
		v.notice = ""
		return v, v.path.Focus()

	case keymap.Matches(keyStr, v.keymap.NextLevel):
		if v.bucket < len(domain.Levels())-1 {
			v.bucket++
			v.cursor = 0
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.PrevLevel):
		if v.bucket > 0 {
			v.bucket--
			v.cursor = 0
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.cursor < len(v.tasks())-1 {
			v.cursor++
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Send):
		return v.sendAll()

	case keymap.Matches(keyStr, v.keymap.Retry):
		return v.retry()

	case keymap.Matches(keyStr, v.keymap.Dismiss):
		return v.dismiss()
	}

	return v, nil
}

// handleTypingKey processes keys while the path input has focus.
func (v *View) handleTypingKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.typing = false
		v.path.Blur()
		v.path.Reset()
		return v, nil

	case tea.KeyEnter:
		return v.enqueue()
	}

	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

// enqueue creates a task for the typed path in the selected bucket.
func (v *View) enqueue() (*View, tea.Cmd) {
	path := strings.TrimSpace(v.path.Value())
	if path == "" {
		return v, nil
	}

	v.typing = false
	v.path.Blur()
	v.path.Reset()

	result, err := v.uploads.Enqueue(v.level(), []string{path})
	if err != nil {
		v.err = err
		return v, nil
	}
	if reason, ok := result.Rejected[path]; ok {
		v.err = fmt.Errorf("%s: %w", path, reason)
		return v, nil
	}

	v.err = nil
	if len(result.Accepted) > 0 {
		v.notice = "in coda: " + result.Accepted[0].Name
	}
	return v, nil
}

// sendAll transfers the bucket's queued tasks off the update loop.
func (v *View) sendAll() (*View, tea.Cmd) {
	if v.sending {
		return v, nil
	}

	v.sending = true
	v.notice = ""
	level := v.level()
	return v, func() tea.Msg {
		return messages.UploadsUpdated{Bucket: level, Err: v.uploads.SendAll(v.ctx, level)}
	}
}

// retry re-runs the failed task under the cursor.
func (v *View) retry() (*View, tea.Cmd) {
	task, ok := v.selectedTask()
	if !ok || task.Status != domain.UploadFailed {
		return v, nil
	}

	v.sending = true
	level := v.level()
	taskID := task.ID
	return v, func() tea.Msg {
		return messages.UploadsUpdated{Bucket: level, Err: v.uploads.Retry(v.ctx, taskID)}
	}
}

// dismiss removes the finished task under the cursor.
func (v *View) dismiss() (*View, tea.Cmd) {
	task, ok := v.selectedTask()
	if !ok {
		return v, nil
	}
	if err := v.uploads.Dismiss(task.ID); err != nil {
		v.err = err
		return v, nil
	}
	v.err = nil
	v.clampCursor()
	return v, nil
}

// level returns the selected bucket's normative level.
func (v *View) level() domain.Level {
	return domain.Levels()[v.bucket]
}

// tasks returns the selected bucket's task list.
func (v *View) tasks() []domain.UploadTask {
	return v.uploads.Tasks(v.level())
}

// selectedTask returns the task under the cursor.
func (v *View) selectedTask() (domain.UploadTask, bool) {
	tasks := v.tasks()
	if v.cursor >= len(tasks) {
		return domain.UploadTask{}, false
	}
	return tasks[v.cursor], true
}

// clampCursor keeps the cursor inside the task list after removals.
func (v *View) clampCursor() {
	if n := len(v.tasks()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Carica documenti"), "")
	sections = append(sections, v.renderBuckets(), "")
	sections = append(sections, v.renderTasks())

	if v.typing {
		sections = append(sections, "", v.path.View())
	}
	if v.sending {
		sections = append(sections, "", v.styles.Muted.Render("invio in corso..."))
	}
	if v.notice != "" {
		sections = append(sections, "", v.styles.Success.Render(v.notice))
	}
	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("errore: "+v.err.Error()))
	}

	sections = append(sections, "", v.styles.Help.Render(
		"[a] Aggiungi  [Enter] Invia tutto  [r] Riprova  [x] Rimuovi  [Tab] Livello  [Esc] Indietro"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBuckets renders the level tabs.
func (v *View) renderBuckets() string {
	tabs := make([]string, 0, len(domain.Levels()))
	for i, level := range domain.Levels() {
		label := " " + string(level) + " "
		if i == v.bucket {
			tabs = append(tabs, v.styles.Selected.Render(label))
		} else {
			tabs = append(tabs, v.styles.Muted.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// renderTasks renders the selected bucket's queue.
func (v *View) renderTasks() string {
	tasks := v.tasks()
	if len(tasks) == 0 {
		return v.styles.Muted.Render("nessun documento in coda")
	}

	lines := make([]string, 0, len(tasks))
	for i, task := range tasks {
		cursor := "  "
		if i == v.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s  %s", cursor, v.statusGlyph(task.Status), task.Name, v.styles.Muted.Render(task.TargetScope.Describe()))
		if task.Status == domain.UploadFailed && task.ErrorDetail != "" {
			line += "\n    " + v.styles.Error.Render(task.ErrorDetail)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// statusGlyph returns the one-character status marker.
func (v *View) statusGlyph(status domain.UploadStatus) string {
	switch status {
	case domain.UploadSucceeded:
		return v.styles.Success.Render("✓")
	case domain.UploadFailed:
		return v.styles.Error.Render("✗")
	case domain.UploadSending:
		return v.styles.Warning.Render("…")
	default:
		return v.styles.Muted.Render("·")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.path.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Bucket returns the selected bucket's level.
func (v *View) Bucket() domain.Level {
	return v.level()
}

// Cursor returns the cursor position in the task list.
func (v *View) Cursor() int {
	return v.cursor
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
