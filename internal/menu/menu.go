package menu

import (
	"time"

	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/atomicstack/tmux-stream-catalog/internal/tmux"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Item represents a selectable menu entry. Name, when set, is the only text
// the search filter matches against.
type Item struct {
	ID    string
	Label string
	Name  string
}

// Context carries runtime data needed by loader functions.
type Context struct {
	Channels   []ChannelEntry
	SelectedID string
	Player     PlayerStatus
}

// ChannelEntry is a catalog entry as seen by menu loaders.
type ChannelEntry struct {
	ID           string
	Name         string
	URL          string
	ThumbnailRef string
	CreatedAt    time.Time
	Playing      bool
}

// PlayerStatus mirrors the external player's last observed state.
type PlayerStatus struct {
	WindowID string
	URL      string
	Alive    bool
	Err      string
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// ChannelPrompt requests the add-channel form.
type ChannelPrompt struct {
	Context Context
}

// ChannelEntriesFromCatalog converts catalog entries, marking the bound one.
func ChannelEntriesFromCatalog(entries []catalog.Entry, selected uuid.UUID) []ChannelEntry {
	out := make([]ChannelEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ChannelEntry{
			ID:           entry.Key(),
			Name:         entry.Name,
			URL:          entry.URL,
			ThumbnailRef: entry.ThumbnailRef,
			CreatedAt:    entry.CreatedAt,
			Playing:      selected != uuid.Nil && entry.ID == selected,
		})
	}
	return out
}

// PlayerStatusFromTmux converts a tmux player status for display.
func PlayerStatusFromTmux(status tmux.PlayerStatus) PlayerStatus {
	out := PlayerStatus{
		WindowID: status.WindowID,
		URL:      status.URL,
		Alive:    status.Alive,
	}
	if status.Err != nil {
		out.Err = status.Err.Error()
	}
	return out
}
