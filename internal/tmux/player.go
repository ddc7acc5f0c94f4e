package tmux

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/kballard/go-shellquote"
)

const (
	surfaceName       = "tmux"
	DefaultWindowName = "stream-player"
)

// PlayerStatus describes the player window as last observed.
type PlayerStatus struct {
	WindowID string
	URL      string
	Alive    bool
	Err      error
}

// PlayerWindow plays streams by running the player command in a detached
// tmux window. It satisfies playback.Surface; failures are logged and kept
// in LastError instead of being returned.
type PlayerWindow struct {
	socketPath string
	command    []string
	name       string

	mu       sync.Mutex
	windowID string
	url      string
	lastErr  error
}

// NewPlayerWindow returns a player that appends the stream url to command.
func NewPlayerWindow(socketPath string, command []string) *PlayerWindow {
	cmd := make([]string, len(command))
	copy(cmd, command)
	return &PlayerWindow{socketPath: socketPath, command: cmd, name: DefaultWindowName}
}

// Bind replaces any running player with one playing url.
func (p *PlayerWindow) Bind(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.killLocked()
	if len(p.command) == 0 {
		p.failLocked(errors.New("player command is empty"))
		return
	}
	client, err := sharedClient(p.socketPath)
	if err != nil {
		p.failLocked(err)
		return
	}
	argv := append(append([]string{}, p.command...), url)
	out, err := client.Command("new-window", "-d", "-P", "-F", "#{window_id}", "-n", p.name, shellquote.Join(argv...))
	if err != nil {
		dropClient(client)
		p.failLocked(fmt.Errorf("start player: %w", err))
		return
	}
	p.windowID = strings.TrimSpace(out)
	p.url = url
	p.lastErr = nil
	events.Player.Spawn(p.windowID, argv)
	events.Playback.Bind(surfaceName, url)
}

// Unbind stops the running player, if any.
func (p *PlayerWindow) Unbind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.killLocked()
	events.Playback.Unbind(surfaceName)
}

func (p *PlayerWindow) killLocked() {
	if p.windowID == "" {
		return
	}
	target := p.windowID
	p.windowID = ""
	p.url = ""
	client, err := sharedClient(p.socketPath)
	if err != nil {
		p.failLocked(err)
		return
	}
	if _, err := client.Command("kill-window", "-t", target); err != nil {
		// the player may already have exited on its own
		events.Playback.Error(surfaceName, err)
		return
	}
	events.Player.Kill(target)
}

func (p *PlayerWindow) failLocked(err error) {
	p.lastErr = err
	logging.Error(err)
	events.Playback.Error(surfaceName, err)
}

// Status reports whether the player window still exists.
func (p *PlayerWindow) Status() (PlayerStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := PlayerStatus{WindowID: p.windowID, URL: p.url, Err: p.lastErr}
	if p.windowID == "" {
		return status, nil
	}
	client, err := sharedClient(p.socketPath)
	if err != nil {
		return status, err
	}
	out, err := client.DisplayMessage(p.windowID, "#{window_id}")
	if err != nil && !windowGone(err) {
		// the window may still be running; keep it so Unbind can kill it
		dropClient(client)
		return status, fmt.Errorf("query player window %s: %w", p.windowID, err)
	}
	if err == nil && strings.TrimSpace(out) == p.windowID {
		status.Alive = true
		return status, nil
	}
	events.Player.Exited(p.windowID)
	p.windowID = ""
	p.url = ""
	status.WindowID = ""
	status.URL = ""
	return status, nil
}

// windowGone reports whether err is tmux saying the target window no longer
// exists, as opposed to a failure talking to the server.
func windowGone(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "can't find window") || strings.Contains(msg, "no such window")
}

// LastError returns the most recent playback failure.
func (p *PlayerWindow) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
