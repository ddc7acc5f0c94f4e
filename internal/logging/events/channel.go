package events

import "github.com/atomicstack/tmux-stream-catalog/internal/logging"

type ChannelTracer struct{}

type channelReason string

const (
	ChannelReasonEscape channelReason = "escape"
)

var Channel = ChannelTracer{}

func (ChannelTracer) AddPrompt(existing int) {
	logging.Trace("channel.add.prompt", map[string]interface{}{"existing": existing})
}

func (ChannelTracer) SubmitAdd(name, url string) {
	logging.Trace("channel.add.submit", map[string]interface{}{"name": name, "url": url})
}

func (ChannelTracer) CancelAdd(reason channelReason) {
	logging.Trace("channel.add.cancel", map[string]interface{}{"reason": string(reason)})
}

func (ChannelTracer) RejectAdd(err error) {
	if err == nil {
		return
	}
	logging.Trace("channel.add.reject", map[string]interface{}{"error": err.Error()})
}

func (ChannelTracer) Select(id string) {
	logging.Trace("channel.select", map[string]interface{}{"id": id})
}

func (ChannelTracer) Remove(ids []string) {
	logging.Trace("channel.remove", map[string]interface{}{"ids": ids})
}

func (ChannelTracer) Copy(id string) {
	logging.Trace("channel.copy", map[string]interface{}{"id": id})
}

func (ChannelTracer) Stop() {
	logging.Trace("channel.stop", nil)
}
