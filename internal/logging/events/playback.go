package events

import "github.com/atomicstack/tmux-stream-catalog/internal/logging"

type PlaybackTracer struct{}

type PlayerTracer struct{}

var (
	Playback = PlaybackTracer{}
	Player   = PlayerTracer{}
)

func (PlaybackTracer) Bind(surface, url string) {
	logging.Trace("playback.bind", map[string]interface{}{"surface": surface, "url": url})
}

func (PlaybackTracer) Unbind(surface string) {
	logging.Trace("playback.unbind", map[string]interface{}{"surface": surface})
}

func (PlaybackTracer) Error(surface string, err error) {
	if err == nil {
		return
	}
	logging.Trace("playback.error", map[string]interface{}{"surface": surface, "error": err.Error()})
}

func (PlayerTracer) Spawn(windowID string, argv []string) {
	logging.Trace("player.spawn", map[string]interface{}{"window": windowID, "argv": argv})
}

func (PlayerTracer) Kill(windowID string) {
	logging.Trace("player.kill", map[string]interface{}{"window": windowID})
}

func (PlayerTracer) Exited(windowID string) {
	logging.Trace("player.exited", map[string]interface{}{"window": windowID})
}
