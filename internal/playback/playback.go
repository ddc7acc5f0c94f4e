package playback

import (
	"sync"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
)

// Surface is where the selected stream plays. Calls are fire-and-forget:
// implementations report failures through logging rather than to the caller.
type Surface interface {
	Bind(url string)
	Unbind()
}

// Discard accepts bindings without playing anything.
type Discard struct{}

func (Discard) Bind(url string) {
	events.Playback.Bind("none", url)
}

func (Discard) Unbind() {
	events.Playback.Unbind("none")
}

// Call is one recorded surface interaction. An empty URL marks an unbind.
type Call struct {
	Bind bool
	URL  string
}

// Recorder keeps every call it receives. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	url   string
}

func (r *Recorder) Bind(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Bind: true, URL: url})
	r.url = url
}

func (r *Recorder) Unbind() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{})
	r.url = ""
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Bound returns the url currently bound, if any.
func (r *Recorder) Bound() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.url, r.url != ""
}
