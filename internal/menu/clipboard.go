package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	writeClipboardFn     = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

// ChannelCopyAction puts the channel's stream url on the system clipboard.
func ChannelCopyAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	entry, ok := FindChannel(ctx, target)
	if !ok {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("channel %s not found", target)} }
	}
	return func() tea.Msg {
		events.Channel.Copy(target)
		if clipboardUnsupported() {
			return ActionResult{Err: fmt.Errorf("system clipboard unavailable")}
		}
		if err := writeClipboardFn(entry.URL); err != nil {
			return ActionResult{Err: fmt.Errorf("copy %s: %w", entry.Name, err)}
		}
		return ActionResult{Info: fmt.Sprintf("Copied %s url", entry.Name)}
	}
}
