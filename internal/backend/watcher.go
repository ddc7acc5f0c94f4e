// Package backend polls the external player and publishes its status to the
// UI loop.
package backend

import (
	"context"
	"time"

	"github.com/atomicstack/tmux-stream-catalog/internal/tmux"
)

type Kind int

const (
	KindPlayer Kind = iota
)

const (
	eventBuffer = 16
	minQueryGap = 250 * time.Millisecond
)

// Event carries one poll result. Data holds a tmux.PlayerStatus for
// KindPlayer.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// StatusSource reports the state of the external player.
type StatusSource interface {
	Status() (tmux.PlayerStatus, error)
}

// Watcher polls a StatusSource on an interval. Its event channel is closed
// once polling has stopped.
type Watcher struct {
	source   StatusSource
	interval time.Duration
	throttle *throttle
	cancel   context.CancelFunc
	events   chan Event
	done     chan struct{}
}

// NewWatcher starts polling source every interval, one second when interval
// is not positive. A nil source yields a watcher whose channel is already
// closed.
func NewWatcher(source StatusSource, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		throttle: newThrottle(minQueryGap),
		cancel:   cancel,
		events:   make(chan Event, eventBuffer),
		done:     make(chan struct{}),
	}
	go w.run(ctx)
	return w
}

func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels polling. A query already running is allowed to finish; Wait
// blocks until it has.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the event channel is closed.
func (w *Watcher) Wait() {
	<-w.done
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)
	if w.source == nil {
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for w.publish(ctx) {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// publish queries the player once and sends the result. It reports false
// once the watcher has been stopped.
func (w *Watcher) publish(ctx context.Context) bool {
	if err := w.throttle.wait(ctx); err != nil {
		return false
	}
	status, err := w.source.Status()
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case w.events <- Event{Kind: KindPlayer, Data: status, Err: err}:
		return true
	}
}
