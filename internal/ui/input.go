package ui

import (
	"unicode"

	"github.com/atomicstack/tmux-stream-catalog/internal/data/intent"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	uistate "github.com/atomicstack/tmux-stream-catalog/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// filterEditKeys change the filter text of the current level.
var filterEditKeys = map[string]uistate.FilterEdit{
	"ctrl+u":    uistate.EditClear,
	"ctrl+w":    uistate.EditWordBackward,
	"backspace": uistate.EditRuneBackward,
	"ctrl+h":    uistate.EditRuneBackward,
}

// filterMoveKeys move the filter cursor, readline style.
var filterMoveKeys = map[string]uistate.FilterMove{
	"ctrl+a": uistate.FilterStart,
	"ctrl+e": uistate.FilterEnd,
	"left":   uistate.FilterRuneBackward,
	"right":  uistate.FilterRuneForward,
	"alt+b":  uistate.FilterWordBackward,
	"alt+f":  uistate.FilterWordForward,
}

// channelKey is a shortcut available on channel lists.
type channelKey struct {
	// focused bindings do nothing when the list is empty
	focused bool
	intent  func(item menu.Item) intent.Intent
}

var channelKeys = map[string]channelKey{
	"delete": {focused: true, intent: func(item menu.Item) intent.Intent {
		return intent.Remove{IDs: []string{item.ID}}
	}},
	"ctrl+s": {intent: func(menu.Item) intent.Intent {
		return intent.Deselect{}
	}},
}

// newFilterCursor is the blinking block drawn in the filter prompt.
func newFilterCursor() cursor.Model {
	c := cursor.New()
	c.Style = styles.Cursor.Copy()
	c.TextStyle = styles.Filter.Copy()
	c.SetChar(" ")
	return c
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l != nil && before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput routes filter keys to the current level. It reports false
// for keys it leaves to navigation.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.currentLevel()
	if m.loading || current == nil {
		return false, nil
	}
	before := current.FilterCursorPos()
	key := msg.String()

	if edit, ok := filterEditKeys[key]; ok {
		if !current.EditFilter(edit) {
			return false, nil
		}
		m.afterFilterEdit(current, before)
		events.Filter.Edit(current.ID, edit.String(), current.Filter)
		return true, nil
	}
	if move, ok := filterMoveKeys[key]; ok {
		if !current.MoveFilterCursor(move) {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.Move(current.ID, move.String(), current.FilterCursor)
		return true, nil
	}

	text := ""
	switch msg.Type {
	case tea.KeySpace:
		text = " "
	case tea.KeyRunes:
		if msg.Alt || !printable(msg.Runes) {
			return false, nil
		}
		text = string(msg.Runes)
	}
	if text == "" || !current.InsertFilterText(text) {
		return false, nil
	}
	m.afterFilterEdit(current, before)
	events.Filter.Edit(current.ID, "insert", current.Filter)
	return true, nil
}

// printable rejects control runes and spaces; spaces arrive as KeySpace.
func printable(runes []rune) bool {
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (m *Model) afterFilterEdit(l *level, before int) {
	m.noteFilterCursorChange(l, before)
	m.forceClearInfo()
	m.errMsg = ""
	m.syncViewport(l)
}

// handleChannelKey runs a channel shortcut against the focused row. The
// intent is delivered as a message so it is applied like any menu action.
func (m *Model) handleChannelKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.currentLevel()
	if m.loading || current == nil || !menu.IsChannelLevel(current.ID) {
		return false, nil
	}
	binding, ok := channelKeys[msg.String()]
	if !ok {
		return false, nil
	}
	item, focused := current.Focused()
	if binding.focused && !focused {
		return true, nil
	}
	events.UI.Key(current.ID, msg.String(), item.ID)
	in := binding.intent(item)
	label := itemDisplayName(item)
	return true, func() tea.Msg {
		return menu.IntentMsg{Intent: in, Label: label}
	}
}

func filterPlaceholder(levelID string) string {
	if menu.IsChannelLevel(levelID) {
		return "(type to filter channels by name)"
	}
	return "(type to search)"
}

func paint(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

// filterPrompt renders the filter row with the cursor drawn over the rune
// it sits on. An empty filter shows a placeholder behind the cursor.
func (m *Model) filterPrompt() (string, *lipgloss.Style) {
	current := m.currentLevel()
	if current == nil {
		return ">", styles.Filter
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	m.filterCursor.TextStyle = lipgloss.Style{}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	prompt := paint(styles.FilterPrompt, "» ")

	if current.Filter == "" {
		hint := []rune(filterPlaceholder(current.ID))
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		return prompt + m.renderFilterCursor(string(hint[:1])) + paint(styles.FilterPlaceholder, string(hint[1:])), nil
	}

	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	under, after := " ", ""
	if pos < len(runes) {
		under, after = string(runes[pos]), string(runes[pos+1:])
	}
	return prompt + paint(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(under) + paint(styles.Filter, after), nil
}

// renderFilterCursor draws char as the cursor cell. While the blink is in its
// off phase the char is drawn plain.
func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	cell := m.filterCursor.TextStyle.Copy().Inline(true)
	switch {
	case m.filterCursor.Blink:
		return cell.Render(char)
	case styles.Cursor != nil:
		return cell.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	default:
		return cell.Reverse(true).Render(char)
	}
}
