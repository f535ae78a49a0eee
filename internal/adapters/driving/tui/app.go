package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/components/status"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/keymap"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/views/chat"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/views/login"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/views/menu"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/views/scope"
	"github.com/civita-labs/urbanista-cli/internal/adapters/driving/tui/views/upload"
	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// brokerSubscriberID is the id under which the TUI subscribes to the broker.
const brokerSubscriberID = "tui"

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the active keybindings.
	keymap *keymap.KeyMap

	// loginView is the sign-in view.
	loginView *login.View

	// menuView is the main navigation menu.
	menuView *menu.View

	// scopeView is the cascading territory selector.
	scopeView *scope.View

	// chatView is the conversation view.
	chatView *chat.View

	// uploadView is the document upload view.
	uploadView *upload.View

	// statusbar shows identity, territory and key hints.
	statusbar *status.Bar

	// scopeCh carries broker notifications into the update loop.
	// Broker callbacks run synchronously under the broker's lock, so the
	// subscriber only does a non-blocking send here and never calls back
	// into the broker.
	scopeCh chan domain.Scope

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		loginView:  login.NewView(s, ports.Session),
		menuView:   menu.NewView(s),
		scopeView:  scope.NewView(s, km, ports.Hierarchy, ports.Selector),
		chatView:   chat.NewView(s, ports.Chat),
		uploadView: upload.NewView(s, km, ports.Uploads),
		statusbar:  status.NewBar(s, km),
		scopeCh:    make(chan domain.Scope, 1),
	}

	session := ports.Session.Current()
	if session.IsZero() {
		a.currentView = messages.ViewLogin
	} else {
		a.currentView = messages.ViewMenu
		a.statusbar.SetIdentity(session.Identity)
	}
	a.statusbar.SetScope(ports.Broker.Current().Describe())

	// The broker notifies synchronously under its own lock, so the
	// subscriber must never block. One slot holding the latest value is
	// enough: intermediate scopes are superseded anyway, and the final
	// one always lands.
	ports.Broker.Subscribe(brokerSubscriberID, func(sc domain.Scope) {
		for {
			select {
			case a.scopeCh <- sc:
				return
			default:
				select {
				case <-a.scopeCh:
				default:
				}
			}
		}
	})

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	a.scopeView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	a.uploadView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("urbanista - Assistente normativo"),
		a.loginView.Init(),
		a.listenScope(),
	)
}

// listenScope arms a command that waits for the next broker notification.
func (a *App) listenScope() tea.Cmd {
	return func() tea.Msg {
		sc, ok := <-a.scopeCh
		if !ok {
			return nil
		}
		return messages.ScopeChanged{Scope: sc}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.loginView.SetDimensions(msg.Width, msg.Height)
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.scopeView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.uploadView.SetDimensions(msg.Width, msg.Height)
		a.statusbar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a.forward(msg)

	case messages.ScopeChanged:
		a.statusbar.SetScope(msg.Scope.Describe())
		// The chat session tracks the shared scope silently even while
		// another view is active.
		a.chatView, cmd = a.chatView.Update(msg)
		return a, tea.Batch(cmd, a.listenScope())

	case messages.LoginCompleted:
		if msg.Err == nil {
			a.statusbar.SetIdentity(msg.Session.Identity)
		}
		a.loginView, cmd = a.loginView.Update(msg)
		return a, cmd

	case messages.LoggedOut:
		a.statusbar.SetIdentity("")
		a.currentView = messages.ViewLogin
		return a, a.loginView.Init()

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewScope:
			return a, a.scopeView.Init()
		case messages.ViewChat:
			return a, a.chatView.Init()
		case messages.ViewUpload:
			return a, a.uploadView.Init()
		case messages.ViewLogin:
			return a, a.loginView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No special initialisation.
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusbar.SetState(status.StateError)
		a.statusbar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a.forward(msg)
}

// forward routes a message to the active view.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewScope:
		a.scopeView, cmd = a.scopeView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't handle other messages.
	}
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewLogin:
		body = a.loginView.View()
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewScope:
		body = a.scopeView.View()
	case messages.ViewChat:
		body = a.chatView.View()
	case messages.ViewUpload:
		body = a.uploadView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n" + a.statusbar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Aiuto

Navigazione:
  esc         Torna al menu
  ctrl+c      Esci

Menu:
  j/k, ↑/↓    Naviga le voci
  enter       Seleziona
  q           Esci

Territorio:
  j/k, ↑/↓    Naviga le opzioni
  tab         Livello più specifico
  shift+tab   Livello più ampio
  enter       Imposta il livello
  backspace   Azzera il livello

Chat:
  (digita)    Scrivi la domanda
  enter       Invia
  pgup/pgdn   Scorri la cronologia

Carica documenti:
  a           Aggiungi un file alla coda
  enter       Invia tutta la coda
  r           Riprova un invio fallito
  x           Rimuovi un invio concluso
  tab         Cambia livello normativo

[esc] torna al menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.loginView.SetDimensions(width, height)
	a.menuView.SetDimensions(width, height)
	a.scopeView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.uploadView.SetDimensions(width, height)
	a.statusbar.SetWidth(width)
}
