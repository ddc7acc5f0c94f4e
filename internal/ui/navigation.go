package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	"github.com/atomicstack/tmux-stream-catalog/internal/ui/command"
	uistate "github.com/atomicstack/tmux-stream-catalog/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

var cursorKeys = map[string]uistate.CursorMove{
	"up":     uistate.MoveUp,
	"down":   uistate.MoveDown,
	"pgup":   uistate.MovePageUp,
	"pgdown": uistate.MovePageDown,
	"home":   uistate.MoveHome,
	"end":    uistate.MoveEnd,
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.mode != ModeMenu {
		return nil
	}
	if keyMsg.Type == tea.KeyTab {
		if current := m.currentLevel(); current != nil && current.MultiSelect {
			current.ToggleMarkAtCursor()
		}
		return nil
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	if handled, cmd := m.handleChannelKey(keyMsg); handled {
		return cmd
	}
	key := keyMsg.String()
	if move, ok := cursorKeys[key]; ok {
		m.moveCursor(move)
		return nil
	}
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		return m.popLevel()
	case "enter":
		return m.activate()
	}
	return nil
}

// popLevel closes the current level, or quits from the first one. The parent
// gets its cursor back on the row that opened the closed level.
func (m *Model) popLevel() tea.Cmd {
	if len(m.stack) <= 1 {
		return tea.Quit
	}
	closed := m.currentLevel()
	m.stack = m.stack[:len(m.stack)-1]
	parent := m.currentLevel()
	parent.Cursor = restoredCursor(parent, closed.ID)
	parent.LastCursor = -1
	m.syncViewport(parent)
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func restoredCursor(parent *level, childID string) int {
	if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
		return parent.LastCursor
	}
	if idx := parent.IndexOf(childID); idx >= 0 {
		return idx
	}
	if len(parent.Items) > 0 {
		return len(parent.Items) - 1
	}
	return parent.Cursor
}

// activate runs the focused row, or the marked rows of a multi-select level,
// and clears the filter. A row whose node loads items opens a new level;
// otherwise the node's action runs on the command bus.
func (m *Model) activate() tea.Cmd {
	current := m.currentLevel()
	if m.loading || current == nil {
		return nil
	}
	item, ok := current.Focused()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	// marks hidden by the filter are not acted on, so read them first
	if marked := current.MarkedItems(); current.MultiSelect && len(marked) > 0 {
		item = batchItem(marked)
		current.ClearMarks()
	}
	before := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(current, before)

	target, opens := m.target(current, item)
	switch {
	case target == nil:
		m.setInfo(fmt.Sprintf("Selected %s (no action defined yet)", itemDisplayName(item)))
		return nil
	case opens:
		current.LastCursor = current.Cursor
		m.beginPending(target.ID, item)
		return m.loadMenuCmd(target.ID, item.Label, target.Loader)
	}
	m.beginPending(target.ID, item)
	return m.bus.Execute(m.menuContext(), command.Request{ID: target.ID, Label: item.Label, Handler: target.Action, Item: item})
}

// target is the node handling item on l: the child keyed by the item id,
// else l's own node when it has an action. opens reports a child that loads
// a level.
func (m *Model) target(l *level, item menu.Item) (node *menu.Node, opens bool) {
	node = l.Node
	if node == nil {
		node, _ = m.registry.Find(l.ID)
	}
	if node == nil {
		return nil, false
	}
	if child, ok := node.Children[item.ID]; ok {
		if child.Loader != nil {
			return child, true
		}
		if child.Action != nil {
			return child, false
		}
	}
	if node.Action != nil {
		return node, false
	}
	return nil, false
}

// batchItem folds marked items into one item whose id lists every marked id.
func batchItem(marked []menu.Item) menu.Item {
	ids := make([]string, len(marked))
	names := make([]string, len(marked))
	for i, item := range marked {
		ids[i] = item.ID
		names[i] = itemDisplayName(item)
	}
	return menu.Item{ID: strings.Join(ids, "\n"), Label: strings.Join(names, ", ")}
}

func (m *Model) beginPending(id string, item menu.Item) {
	m.loading = true
	m.pendingID, m.pendingLabel = id, itemDisplayName(item)
	m.errMsg = ""
	m.forceClearInfo()
}

func itemDisplayName(item menu.Item) string {
	if item.Name != "" {
		return item.Name
	}
	return strings.TrimSpace(item.Label)
}

// moveCursor applies move to the current level and keeps the cursor on screen.
func (m *Model) moveCursor(move uistate.CursorMove) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if current.MoveCursor(move, m.maxVisibleItems()) {
		events.UI.MenuCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l != nil {
		l.EnsureCursorVisible(m.maxVisibleItems())
	}
}

// handleCategoryLoadedMsg pushes the level a loader produced, provided no
// other load replaced it meanwhile.
func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok || update.id != m.pendingID {
		return nil
	}
	m.loading, m.pendingID, m.pendingLabel = false, "", ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	m.pushLevel(update.id, update.title, update.items)
	return nil
}

func (m *Model) pushLevel(id, title string, items []menu.Item) {
	if menu.IsChannelLevel(id) {
		// the catalog may have changed while the loader ran
		items = menu.ChannelItems(m.menuContext())
	}
	node, _ := m.registry.Find(id)
	l := newLevel(id, title, items, node)
	m.applyNodeSettings(l)
	m.syncViewport(l)
	m.stack = append(m.stack, l)
	if len(l.Items) == 0 {
		m.setInfo(emptyLevelInfo(id))
		return
	}
	m.expireInfo()
}

// applyNodeSettings binds l to its registry node. Channel lists also take
// their rows from the search view.
func (m *Model) applyNodeSettings(l *level) {
	if l == nil {
		return
	}
	if l.Node == nil {
		l.Node, _ = m.registry.Find(l.ID)
	}
	if l.Node != nil {
		l.MultiSelect = l.Node.MultiSelect
	}
	if l.Matcher == nil && menu.IsChannelLevel(l.ID) {
		l.Matcher = m.channelMatcher(l.ID)
		l.UpdateItems(l.Full)
	}
}

func (m *Model) findLevelByID(id string) *level {
	for _, lvl := range m.stack {
		if lvl.ID == id {
			m.applyNodeSettings(lvl)
			return lvl
		}
	}
	return nil
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func emptyLevelInfo(levelID string) string {
	if menu.IsChannelLevel(levelID) {
		return "No channels yet. Choose Add to create one."
	}
	return "No entries found."
}
