package state

import "github.com/atomicstack/tmux-stream-catalog/internal/menu"

// Marks are the items tagged for a bulk action on a MultiSelect level. They
// are kept separate from the playing channel, which the selection package owns.

// IsMarked reports whether the item with id is marked.
func (l *Level) IsMarked(id string) bool {
	_, ok := l.Marked[id]
	return ok
}

// ToggleMark flips the mark on id.
func (l *Level) ToggleMark(id string) {
	if l.Marked == nil {
		l.Marked = make(map[string]struct{})
	}
	if l.IsMarked(id) {
		delete(l.Marked, id)
		return
	}
	l.Marked[id] = struct{}{}
}

// ToggleMarkAtCursor flips the mark on the focused item. It reports false on
// levels that do not allow marking.
func (l *Level) ToggleMarkAtCursor() bool {
	if !l.MultiSelect {
		return false
	}
	item, ok := l.Focused()
	if !ok {
		return false
	}
	l.ToggleMark(item.ID)
	return true
}

// ClearMarks unmarks every item.
func (l *Level) ClearMarks() {
	clear(l.Marked)
}

// MarkedItems returns the marked items that are visible, in display order.
func (l *Level) MarkedItems() []menu.Item {
	if len(l.Marked) == 0 {
		return nil
	}
	marked := make([]menu.Item, 0, len(l.Marked))
	for _, item := range l.Items {
		if l.IsMarked(item.ID) {
			marked = append(marked, item)
		}
	}
	return marked
}

// pruneMarks drops marks whose items are no longer listed.
func (l *Level) pruneMarks() {
	if len(l.Marked) == 0 {
		return
	}
	listed := make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		listed[item.ID] = struct{}{}
	}
	for id := range l.Marked {
		if _, ok := listed[id]; !ok {
			delete(l.Marked, id)
		}
	}
}
