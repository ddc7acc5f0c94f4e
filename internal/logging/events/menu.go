package events

import "github.com/atomicstack/tmux-stream-catalog/internal/logging"

// MenuTracer records navigation through the menu levels.
type MenuTracer struct{}

// FilterTracer records edits to a level's filter text.
type FilterTracer struct{}

var (
	UI     = MenuTracer{}
	Filter = FilterTracer{}
)

type menuEntry struct {
	Level  string `json:"level"`
	Item   string `json:"item,omitempty"`
	Label  string `json:"label,omitempty"`
	Filter string `json:"filter,omitempty"`
	Cursor *int   `json:"cursor,omitempty"`
	Items  *int   `json:"items,omitempty"`
	Key    string `json:"key,omitempty"`
	Op     string `json:"op,omitempty"`
}

func (MenuTracer) MenuEnter(levelID, itemID, label, filter string) {
	logging.Trace("menu.enter", menuEntry{Level: levelID, Item: itemID, Label: label, Filter: filter})
}

func (MenuTracer) MenuCursor(levelID string, cursor int) {
	logging.Trace("menu.cursor", menuEntry{Level: levelID, Cursor: &cursor})
}

func (MenuTracer) Refresh(levelID string, items int) {
	logging.Trace("menu.refresh", menuEntry{Level: levelID, Items: &items})
}

// Key records a channel key binding firing on the focused item.
func (MenuTracer) Key(levelID, key, itemID string) {
	logging.Trace("menu.key", menuEntry{Level: levelID, Key: key, Item: itemID})
}

// Search records the query pushed to the search store.
func (FilterTracer) Search(levelID, query string) {
	logging.Trace("filter.search", menuEntry{Level: levelID, Filter: query})
}

func (FilterTracer) Edit(levelID, op, filter string) {
	logging.Trace("filter.edit", menuEntry{Level: levelID, Op: op, Filter: filter})
}

func (FilterTracer) Move(levelID, op string, cursor int) {
	logging.Trace("filter.move", menuEntry{Level: levelID, Op: op, Cursor: &cursor})
}
