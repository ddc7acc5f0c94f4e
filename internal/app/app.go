package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/tmux-stream-catalog/internal/backend"
	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atomicstack/tmux-stream-catalog/internal/playback"
	"github.com/atomicstack/tmux-stream-catalog/internal/selection"
	"github.com/atomicstack/tmux-stream-catalog/internal/tmux"
	"github.com/atomicstack/tmux-stream-catalog/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Playback modes accepted by Config.Playback.
const (
	PlaybackTmux = "tmux"
	PlaybackNone = "none"
)

// Seed is a channel created before the UI starts.
type Seed struct {
	Name string
	URL  string
}

// Config describes user-provided application options.
type Config struct {
	SocketPath        string
	Width             int
	Height            int
	ShowFooter        bool
	Verbose           bool
	RootMenu          string
	Playback          string
	PlayerCommand     []string
	ThumbnailTemplate string
	PollInterval      time.Duration
	KeepPlaying       bool
	Channels          []Seed
}

// session holds everything Run wires together.
type session struct {
	store      *catalog.Store
	controller *selection.Controller
	player     *tmux.PlayerWindow
	watcher    *backend.Watcher
	model      *ui.Model
}

func newSession(cfg Config) (*session, error) {
	store := catalog.NewStore(catalog.Template(cfg.ThumbnailTemplate))

	s := &session{store: store}
	var surface playback.Surface = playback.Discard{}
	var source backend.StatusSource
	if cfg.Playback != PlaybackNone {
		socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
		if err != nil {
			return nil, fmt.Errorf("resolve socket path: %w", err)
		}
		s.player = tmux.NewPlayerWindow(socketPath, cfg.PlayerCommand)
		surface = s.player
		source = s.player
	}
	s.controller = selection.NewController(store, surface)

	seeded := 0
	for _, seed := range cfg.Channels {
		if _, err := store.Create(seed.Name, seed.URL); err != nil {
			logging.Error(fmt.Errorf("seed channel %q: %w", seed.Name, err))
			continue
		}
		seeded++
	}
	events.App.Seed(seeded)

	s.watcher = backend.NewWatcher(source, cfg.PollInterval)
	return s, nil
}

// newModel builds the UI for the session. close detaches it.
func (s *session) newModel(cfg Config) *ui.Model {
	s.model = ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		RootMenu:   cfg.RootMenu,
		Store:      s.store,
		Controller: s.controller,
		Watcher:    s.watcher,
	})
	return s.model
}

// close detaches the UI, stops playback unless asked to keep it and releases
// tmux resources.
func (s *session) close(keepPlaying bool) {
	if s.model != nil {
		s.model.Close()
		s.model = nil
	}
	s.watcher.Stop()
	if !keepPlaying {
		s.controller.Clear()
	}
	s.controller.Close()
	events.App.Stop(keepPlaying)
	tmux.Shutdown()
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.close(cfg.KeepPlaying)

	program := tea.NewProgram(s.newModel(cfg), tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
