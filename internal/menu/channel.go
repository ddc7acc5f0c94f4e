package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-stream-catalog/internal/data/intent"
	"github.com/atomicstack/tmux-stream-catalog/internal/format/table"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const playingMarker = "▶"

// IntentMsg asks the UI to apply a catalog intent on its own goroutine.
type IntentMsg struct {
	Intent intent.Intent
	Label  string
}

func loadChannelMenu(ctx Context) ([]Item, error) {
	return ChannelItems(ctx), nil
}

// ChannelItems renders one aligned row per channel in catalog order.
func ChannelItems(ctx Context) []Item {
	if len(ctx.Channels) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(ctx.Channels))
	for _, entry := range ctx.Channels {
		marker := " "
		if entry.Playing || (ctx.SelectedID != "" && entry.ID == ctx.SelectedID) {
			marker = playingMarker
		}
		rows = append(rows, []string{marker, entry.Name, entry.URL})
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		entry := ctx.Channels[i]
		items[i] = Item{ID: entry.ID, Label: label, Name: entry.Name}
	}
	return items
}

// FindChannel looks up a channel by id in the context snapshot.
func FindChannel(ctx Context, id string) (ChannelEntry, bool) {
	for _, entry := range ctx.Channels {
		if entry.ID == id {
			return entry, true
		}
	}
	return ChannelEntry{}, false
}

func channelLabel(ctx Context, item Item) string {
	if entry, ok := FindChannel(ctx, item.ID); ok {
		return entry.Name
	}
	if item.Name != "" {
		return item.Name
	}
	return strings.TrimSpace(item.Label)
}

func ChannelSelectAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid channel target")} }
	}
	label := channelLabel(ctx, item)
	return func() tea.Msg {
		events.Channel.Select(target)
		return IntentMsg{Intent: intent.Select{ID: target}, Label: label}
	}
}

func ChannelAddAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		events.Channel.AddPrompt(len(ctx.Channels))
		return ChannelPrompt{Context: ctx}
	}
}

func ChannelRemoveAction(ctx Context, item Item) tea.Cmd {
	ids := splitChannelIDs(item.ID)
	if len(ids) == 0 {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("no channels selected")} }
	}
	label := item.Label
	if len(ids) == 1 {
		label = channelLabel(ctx, Item{ID: ids[0], Label: item.Label, Name: item.Name})
	}
	return func() tea.Msg {
		events.Channel.Remove(ids)
		return IntentMsg{Intent: intent.Remove{IDs: ids}, Label: label}
	}
}

func ChannelStopAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		events.Channel.Stop()
		return IntentMsg{Intent: intent.Deselect{}}
	}
}

func splitChannelIDs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	ids := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
