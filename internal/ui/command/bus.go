package command

import (
	"fmt"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request is one menu action to run against a chosen row.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Bus runs menu actions off the UI loop. Actions never touch the catalog;
// the messages they return are applied by the model on its own loop.
type Bus struct{}

func New() *Bus {
	return &Bus{}
}

// Execute queues req and returns the command that runs it.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		return req.run(ctx)
	}
}

func (req Request) run(ctx menu.Context) tea.Msg {
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	next := req.Handler(ctx, req.Item)
	if next == nil {
		events.Command.NoOp(req.ID, req.Label)
		return nil
	}
	msg := next()
	events.Command.Result(req.ID, req.Label, describe(msg))
	return msg
}

// describe names what an action produced for the trace log.
func describe(msg tea.Msg) string {
	switch msg := msg.(type) {
	case nil:
		return "nothing"
	case menu.IntentMsg:
		if msg.Intent != nil {
			return "intent:" + msg.Intent.Kind()
		}
	case menu.ChannelPrompt:
		return "add form"
	}
	return fmt.Sprintf("%T", msg)
}
