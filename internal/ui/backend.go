package ui

import (
	"github.com/atomicstack/tmux-stream-catalog/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
)

// backendMsg carries one watcher event. closed is set once the watcher has
// stopped and its channel is drained.
type backendMsg struct {
	event  backend.Event
	closed bool
}

// listenBackend waits for the next watcher event. The model re-arms it after
// every event, so at most one read is outstanding.
func listenBackend(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		return backendMsg{event: evt, closed: !ok}
	}
}

func (m *Model) handleBackendMsg(msg tea.Msg) tea.Cmd {
	bm, ok := msg.(backendMsg)
	if !ok {
		return nil
	}
	if bm.closed {
		m.backend = nil
		return nil
	}
	m.observe(bm.event)
	if m.backend == nil {
		return nil
	}
	return listenBackend(m.backend)
}

// observe folds a watcher event into the model. A failed poll keeps the last
// good player status and only records the error for the details panel.
func (m *Model) observe(evt backend.Event) {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		return
	}
	m.backendErr = ""
	if m.dispatcher.Handle(evt).PlayerUpdated {
		m.channelsDirty = true
	}
}

// backendIssue returns the last poll error, if the latest poll failed.
func (m *Model) backendIssue() (string, bool) {
	return m.backendErr, m.backendErr != ""
}
