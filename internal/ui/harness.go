package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness feeds messages to a Model without a terminal and runs every
// command they produce to completion, so a test sees the settled state.
type Harness struct {
	model *Model
}

func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send delivers msg, then drains the resulting commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model != nil {
		h.drain(h.update(msg))
	}
}

// Type presses one key per rune of text.
func (h *Harness) Type(text string) {
	for _, r := range text {
		key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			key.Type = tea.KeySpace
		}
		h.Send(key)
	}
}

func (h *Harness) Press(key tea.KeyType) {
	h.Send(tea.KeyMsg{Type: key})
}

func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

func (h *Harness) Model() *Model {
	return h.model
}

func (h *Harness) update(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	if m, ok := next.(*Model); ok {
		h.model = m
	}
	return cmd
}

// drain runs cmd and everything it leads to. Cursor blinks are dropped so
// the loop ends.
func (h *Harness) drain(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, cursor.BlinkMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, h.update(msg))
		}
	}
}
