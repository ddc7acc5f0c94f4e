package events

import "github.com/atomicstack/tmux-stream-catalog/internal/logging"

type (
	ActionTracer  struct{}
	CommandTracer struct{}
	IntentTracer  struct{}
)

var (
	Action  = ActionTracer{}
	Command = CommandTracer{}
	Intent  = IntentTracer{}
)

type commandEntry struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Msg   string `json:"msg,omitempty"`
}

func (ActionTracer) Error(err error) {
	if err != nil {
		logging.Trace("action.error", map[string]string{"error": err.Error()})
	}
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]string{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", commandEntry{ID: id, Label: label})
}

// Skip records a request that had no handler.
func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", commandEntry{ID: id, Label: label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", commandEntry{ID: id, Label: label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", commandEntry{ID: id, Label: label, Msg: msgType})
}

func (IntentTracer) Apply(kind string) {
	logging.Trace("intent.apply", map[string]string{"kind": kind})
}
