package events

import "github.com/atomicstack/tmux-stream-catalog/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Seed(count int) {
	logging.Trace("app.seed", map[string]interface{}{"channels": count})
}

func (AppTracer) Stop(keepPlaying bool) {
	logging.Trace("app.stop", map[string]interface{}{"keepPlaying": keepPlaying})
}
