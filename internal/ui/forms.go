package ui

import (
	"strings"

	"github.com/atomicstack/tmux-stream-catalog/internal/data/intent"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// handleChannelForm feeds msg to the add form. A rejected submission keeps
// the form open with the catalog's error shown under the inputs.
func (m *Model) handleChannelForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.channelForm == nil {
		m.mode = ModeMenu
		return false, nil
	}
	cmd, done, cancel := m.channelForm.Update(msg)
	if cancel {
		m.closeChannelForm()
		return true, cmd
	}
	if !done {
		return true, cmd
	}
	res := m.dispatcher.Apply(intent.Add{Name: m.channelForm.Name(), URL: m.channelForm.URL()})
	if res.Err != nil {
		events.Channel.RejectAdd(res.Err)
		m.channelForm.SetError(res.Err)
		return true, cmd
	}
	m.closeChannelForm()
	m.errMsg = ""
	m.setInfo(res.Info)
	events.Action.Success(res.Info)
	return true, cmd
}

// handleChannelPromptMsg opens the add form once the add action asks for it.
// The pending action and any earlier status are dropped.
func (m *Model) handleChannelPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.ChannelPrompt)
	if !ok {
		return nil
	}
	m.clearPending()
	m.forceClearInfo()
	m.errMsg = ""
	return m.startChannelForm(prompt)
}

func (m *Model) startChannelForm(prompt menu.ChannelPrompt) tea.Cmd {
	m.channelForm = menu.NewChannelForm(prompt)
	m.mode = ModeChannelForm
	if m.cursorMode != cursor.CursorBlink {
		return m.channelForm.SetCursorMode(m.cursorMode)
	}
	return nil
}

func (m *Model) closeChannelForm() {
	m.channelForm = nil
	m.mode = ModeMenu
}

func (m *Model) viewChannelFormWithHeader(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, styles.Header.Render(header))
	}
	lines = append(lines, styles.FormTitle.Render(m.channelForm.Title()), "", m.channelForm.InputView())
	if err := m.channelForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", m.channelForm.Help())
	return strings.Join(lines, "\n")
}
