package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/keymap"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "", bar.Identity())
	assert.Equal(t, "", bar.Scope())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Init()

	assert.Nil(t, cmd)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := bar.Update(msg)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_SetState(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateThinking)

	assert.Equal(t, StateThinking, bar.State())
}

func TestStatusBar_SetIdentity(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetIdentity("geometra")

	assert.Equal(t, "geometra", bar.Identity())
	assert.Contains(t, bar.View(), "geometra")
}

func TestStatusBar_SetScope(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetScope("Comune di Tarquinia")

	assert.Equal(t, "Comune di Tarquinia", bar.Scope())
	assert.Contains(t, bar.View(), "Tarquinia")
}

func TestStatusBar_View_LoggedOut(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Contains(t, bar.View(), "non connesso")
}

func TestStatusBar_View_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetState(StateError)
	bar.SetMessage("qualcosa è andato storto")

	assert.Contains(t, bar.View(), "errore: qualcosa è andato storto")
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(100)

	assert.Equal(t, 100, bar.Width())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetIdentity("geometra")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	// Identity survives a clear: it tracks the session, not transient state.
	assert.Equal(t, "geometra", bar.Identity())
}
