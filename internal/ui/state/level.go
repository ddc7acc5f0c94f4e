package state

import "github.com/atomicstack/tmux-stream-catalog/internal/menu"

// Level is one open menu screen. Full holds every row the loader produced;
// Items is the part of it that passes the filter.
type Level struct {
	ID     string
	Title  string
	Node   *menu.Node
	Full   []menu.Item
	Items  []menu.Item
	Filter string
	// Matcher replaces FilterItems when set.
	Matcher      Matcher
	FilterCursor int

	Cursor         int
	LastCursor     int // cursor before a child level or a filter took over
	ViewportOffset int

	MultiSelect bool
	Marked      map[string]struct{}
}

func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Node:       node,
		Cursor:     -1,
		LastCursor: -1,
		Marked:     map[string]struct{}{},
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the position of id among the visible items, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range l.Items {
		if l.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Focused returns the item under the cursor.
func (l *Level) Focused() (menu.Item, bool) {
	if l.Cursor >= 0 && l.Cursor < len(l.Items) {
		return l.Items[l.Cursor], true
	}
	return menu.Item{}, false
}

// UpdateItems replaces the rows. Marks and the focused row survive while
// their ids are still listed; otherwise the cursor keeps its index.
func (l *Level) UpdateItems(items []menu.Item) {
	focused, _ := l.Focused()
	offset := l.ViewportOffset
	l.Full = cloneItems(items)
	l.pruneMarks()
	l.applyFilter()
	if len(l.Items) == 0 {
		return
	}
	if idx := l.IndexOf(focused.ID); idx >= 0 {
		l.Cursor = idx
	}
	if offset < 0 || offset >= len(l.Items) {
		offset = 0
	}
	l.ViewportOffset = offset
}

func cloneItems(items []menu.Item) []menu.Item {
	out := make([]menu.Item, len(items))
	copy(out, items)
	return out
}
