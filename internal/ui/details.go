package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/atomicstack/tmux-stream-catalog/internal/format/table"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	"github.com/dustin/go-humanize"
)

// channelDetails describes the channel under the cursor.
type channelDetails struct {
	title   string
	lines   []string
	errLine string
	summary string
}

// highlightedChannel resolves the item under the cursor against the catalog.
func (m *Model) highlightedChannel() (catalog.Entry, bool) {
	current := m.currentLevel()
	if current == nil || !menu.IsChannelLevel(current.ID) {
		return catalog.Entry{}, false
	}
	item, ok := current.Focused()
	if !ok {
		return catalog.Entry{}, false
	}
	id, ok := catalog.ParseKey(item.ID)
	if !ok {
		return catalog.Entry{}, false
	}
	return m.store.Get(id)
}

// hasDetails reports whether the current level shows channel details.
func (m *Model) hasDetails() bool {
	current := m.currentLevel()
	return current != nil && menu.IsChannelLevel(current.ID) && len(current.Items) > 0
}

func (m *Model) channelDetails() *channelDetails {
	if !m.hasDetails() {
		return nil
	}
	entry, ok := m.highlightedChannel()
	if !ok {
		return nil
	}
	status := m.playbackStatus(entry)
	rows := [][]string{
		{"name", entry.Name},
		{"url", entry.URL},
		{"thumbnail", entry.ThumbnailRef},
		{"added", humanize.Time(entry.CreatedAt)},
		{"status", status},
	}
	if m.verbose {
		rows = append(rows, []string{"id", entry.Key()})
		if player := m.player.Status(); player.WindowID != "" {
			rows = append(rows, []string{"window", player.WindowID})
		}
	}
	details := &channelDetails{
		title:   entry.Name,
		lines:   table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft}),
		summary: fmt.Sprintf("%d of %d channels", len(m.dispatcher.View()), m.store.Len()),
	}
	if msg, failed := m.backendIssue(); failed {
		details.errLine = "tmux: " + msg
	}
	return details
}

// playbackStatus describes entry's playback as last observed.
func (m *Model) playbackStatus(entry catalog.Entry) string {
	binding := m.controller.Binding()
	if binding.Empty() || binding.ID != entry.ID {
		return "stopped"
	}
	player := m.player.Status()
	switch {
	case player.Err != "":
		return "player error: " + player.Err
	case !m.player.Observed():
		return "playing"
	case player.Alive && player.URL == binding.URL:
		return "playing in window " + player.WindowID
	case player.Alive:
		return "starting"
	default:
		return "player not running"
	}
}

// detailsLineCount is the number of rows the inline details block uses.
func detailsLineCount(details *channelDetails) int {
	return len(inlineDetails(details))
}
