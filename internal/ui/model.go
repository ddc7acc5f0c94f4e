package ui

import (
	"github.com/atomicstack/tmux-stream-catalog/internal/backend"
	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/atomicstack/tmux-stream-catalog/internal/data/dispatcher"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	"github.com/atomicstack/tmux-stream-catalog/internal/selection"
	"github.com/atomicstack/tmux-stream-catalog/internal/state"
	"github.com/atomicstack/tmux-stream-catalog/internal/theme"
	"github.com/atomicstack/tmux-stream-catalog/internal/ui/command"
	uistate "github.com/atomicstack/tmux-stream-catalog/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

// Mode is what currently receives key presses.
type Mode int

const (
	ModeMenu Mode = iota
	ModeChannelForm
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Options configures a Model. Store and Controller are created when nil.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	RootMenu   string
	Store      *catalog.Store
	Controller *selection.Controller
	Watcher    *backend.Watcher
}

// Model is the Bubble Tea model of the catalog UI. Menu levels form a stack;
// the catalog, the selection and the search and player stores are changed
// only through the dispatcher.
type Model struct {
	mode        Mode
	stack       []*level
	registry    *menu.Registry
	bus         *command.Bus
	rootMenuID  string
	rootTitle   string
	channelForm *menu.ChannelForm

	// pending action, status line and notice
	loading      bool
	pendingID    string
	pendingLabel string
	errMsg       string
	info         notice

	width, height           int
	fixedWidth, fixedHeight bool
	showFooter              bool
	verbose                 bool

	filterCursor      cursor.Model
	cursorMode        cursor.Mode
	filterCursorDirty bool

	store         *catalog.Store
	controller    *selection.Controller
	search        state.SearchStore
	player        state.PlayerStore
	dispatcher    *dispatcher.Dispatcher
	backend       *backend.Watcher
	backendErr    string
	channelsDirty bool
	unsubscribe   []func()
}

// NewModel builds the model at the main menu, or at opts.RootMenu.
func NewModel(opts Options) *Model {
	store := opts.Store
	if store == nil {
		store = catalog.NewStore(nil)
	}
	controller := opts.Controller
	if controller == nil {
		controller = selection.NewController(store, nil)
	}
	search, player := state.NewSearchStore(), state.NewPlayerStore()
	m := &Model{
		mode:         ModeMenu,
		registry:     menu.BuildRegistry(),
		bus:          command.New(),
		rootTitle:    defaultRootTitle,
		width:        max(opts.Width, 0),
		height:       max(opts.Height, 0),
		fixedWidth:   opts.Width > 0,
		fixedHeight:  opts.Height > 0,
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		filterCursor: newFilterCursor(),
		cursorMode:   cursor.CursorBlink,
		store:        store,
		controller:   controller,
		search:       search,
		player:       player,
		dispatcher:   dispatcher.New(store, controller, search, player),
		backend:      opts.Watcher,
	}
	m.unsubscribe = []func(){
		store.Subscribe(func(catalog.Change) { m.channelsDirty = true }),
		controller.Subscribe(func(selection.Change) { m.channelsDirty = true }),
	}
	root := newLevel("root", "Main Menu", menu.RootItems(), m.registry.Root())
	m.applyNodeSettings(root)
	m.syncViewport(root)
	m.stack = []*level{root}
	m.applyRootMenuOverride(opts.RootMenu)
	return m
}

// setCursorMode switches the blink mode of the filter and form cursors.
func (m *Model) setCursorMode(mode cursor.Mode) tea.Cmd {
	m.cursorMode = mode
	cmd := m.filterCursor.SetMode(mode)
	if m.channelForm != nil {
		return tea.Batch(cmd, m.channelForm.SetCursorMode(mode))
	}
	return cmd
}

// Close detaches the model from the catalog and selection.
func (m *Model) Close() {
	for _, fn := range m.unsubscribe {
		fn()
	}
	m.unsubscribe = nil
}

// Init starts listening to the watcher and focuses the filter cursor.
func (m *Model) Init() tea.Cmd {
	var listen tea.Cmd
	if m.backend != nil {
		listen = listenBackend(m.backend)
	}
	return tea.Batch(listen, m.filterCursor.Focus())
}

// Update routes msg to the open form or to the handler for its type, then
// brings channel lists and the search query up to date.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.updateFilterCursorModel(msg)}
	if handled, cmd := m.handleActiveForm(msg); handled {
		cmds = append(cmds, cmd)
	} else if handler := m.handlerFor(msg); handler != nil {
		cmds = append(cmds, handler(msg))
	}
	return m, m.finishUpdate(cmds)
}

// handleActiveForm routes key presses and blink ticks to the open form.
// Everything else still reaches the typed handlers so backend polling and
// resizes keep working while the form is up.
func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode != ModeChannelForm {
		return false, nil
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey && m.handlerFor(msg) != nil {
		return false, nil
	}
	return m.handleChannelForm(msg)
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	switch msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg
	case categoryLoadedMsg:
		return m.handleCategoryLoadedMsg
	case menu.ActionResult:
		return m.handleActionResultMsg
	case menu.IntentMsg:
		return m.handleIntentMsg
	case menu.ChannelPrompt:
		return m.handleChannelPromptMsg
	case backendMsg:
		return m.handleBackendMsg
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.refreshChannelLevels()
	m.syncSearch()
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		cmds = append(cmds, m.filterCursor.BlinkCmd())
	}
	return tea.Batch(cmds...)
}
