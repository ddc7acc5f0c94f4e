package tmux

import (
	"errors"
	"os/user"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging"
	"github.com/kballard/go-shellquote"
)

type fakeClient struct {
	commands [][]string
	outputs  map[string]string
	errs     map[string]error
	windows  map[string]bool
	closed   int

	// displayErrs are returned by the next DisplayMessage calls, in order.
	displayErrs []error
}

func newFakeClient() *fakeClient {
	return &fakeClient{outputs: map[string]string{}, errs: map[string]error{}, windows: map[string]bool{}}
}

func (f *fakeClient) Command(parts ...string) (string, error) {
	f.commands = append(f.commands, append([]string{}, parts...))
	if len(parts) == 0 {
		return "", errors.New("empty command")
	}
	if err := f.errs[parts[0]]; err != nil {
		return "", err
	}
	if parts[0] == "new-window" {
		id := f.outputs["new-window"]
		f.windows[id] = true
		return id + "\n", nil
	}
	if parts[0] == "kill-window" && len(parts) > 2 {
		delete(f.windows, parts[2])
	}
	return f.outputs[parts[0]], nil
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	if len(f.displayErrs) > 0 {
		err := f.displayErrs[0]
		f.displayErrs = f.displayErrs[1:]
		return "", err
	}
	if !f.windows[target] {
		return "", errors.New("can't find window")
	}
	return target, nil
}

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	Shutdown()
	newTmux = fn
	logging.Configure(filepath.Join(t.TempDir(), "catalog.log"))
	t.Cleanup(func() {
		Shutdown()
		newTmux = prev
		logging.Configure("")
	})
}

func TestPlayerBindSpawnsWindow(t *testing.T) {
	fake := newFakeClient()
	fake.outputs["new-window"] = "@7"
	var sockets []string
	withStubTmux(t, func(socket string) (tmuxClient, error) {
		sockets = append(sockets, socket)
		return fake, nil
	})

	p := NewPlayerWindow("/tmp/sock", []string{"mpv", "--force-window=yes"})
	p.Bind("http://a/s.m3u8?x=1&y=2")

	if len(fake.commands) != 1 {
		t.Fatalf("expected one command, got %v", fake.commands)
	}
	cmd := fake.commands[0]
	want := []string{"new-window", "-d", "-P", "-F", "#{window_id}", "-n", DefaultWindowName}
	if len(cmd) != len(want)+1 || !reflect.DeepEqual(cmd[:len(want)], want) {
		t.Fatalf("expected %v prefix, got %v", want, cmd)
	}
	argv, err := shellquote.Split(cmd[len(want)])
	if err != nil {
		t.Fatalf("split player command: %v", err)
	}
	if !reflect.DeepEqual(argv, []string{"mpv", "--force-window=yes", "http://a/s.m3u8?x=1&y=2"}) {
		t.Fatalf("unexpected player argv %v", argv)
	}
	status, err := p.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Alive || status.WindowID != "@7" || status.URL != "http://a/s.m3u8?x=1&y=2" {
		t.Fatalf("unexpected status %#v", status)
	}
	if !reflect.DeepEqual(sockets, []string{"/tmp/sock"}) {
		t.Fatalf("expected one connection to /tmp/sock, got %v", sockets)
	}
}

func TestPlayerRebindKillsPreviousWindow(t *testing.T) {
	fake := newFakeClient()
	fake.outputs["new-window"] = "@1"
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	p := NewPlayerWindow("", []string{"mpv"})
	p.Bind("http://a")
	fake.outputs["new-window"] = "@2"
	p.Bind("http://b")

	var verbs []string
	for _, cmd := range fake.commands {
		verbs = append(verbs, cmd[0])
	}
	if !reflect.DeepEqual(verbs, []string{"new-window", "kill-window", "new-window"}) {
		t.Fatalf("unexpected command sequence %v", verbs)
	}
	if kill := fake.commands[1]; !reflect.DeepEqual(kill, []string{"kill-window", "-t", "@1"}) {
		t.Fatalf("expected kill of @1, got %v", kill)
	}
}

func TestPlayerUnbindKillsWindow(t *testing.T) {
	fake := newFakeClient()
	fake.outputs["new-window"] = "@3"
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	p := NewPlayerWindow("", []string{"mpv"})
	p.Unbind()
	if len(fake.commands) != 0 {
		t.Fatalf("expected unbind without a window to issue nothing, got %v", fake.commands)
	}
	p.Bind("http://a")
	p.Unbind()
	status, _ := p.Status()
	if status.Alive || status.WindowID != "" {
		t.Fatalf("expected no window after unbind, got %#v", status)
	}
}

func TestPlayerStatusDetectsExit(t *testing.T) {
	fake := newFakeClient()
	fake.outputs["new-window"] = "@4"
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	p := NewPlayerWindow("", []string{"mpv"})
	p.Bind("http://a")
	delete(fake.windows, "@4")

	status, err := p.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Alive || status.WindowID != "" {
		t.Fatalf("expected exited player, got %#v", status)
	}
}

func TestPlayerStatusKeepsWindowOnQueryFailure(t *testing.T) {
	fake := newFakeClient()
	fake.outputs["new-window"] = "@7"
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	p := NewPlayerWindow("", []string{"mpv"})
	p.Bind("http://a")
	fake.displayErrs = []error{errors.New("control client closed")}

	status, err := p.Status()
	if err == nil || !strings.Contains(err.Error(), "control client closed") {
		t.Fatalf("expected query error, got %v", err)
	}
	if status.WindowID != "@7" || status.URL != "http://a" {
		t.Fatalf("expected window to be kept after a query failure, got %#v", status)
	}
	if fake.closed != 1 {
		t.Fatalf("expected failed client to be dropped, closed=%d", fake.closed)
	}

	p.Unbind()
	last := fake.commands[len(fake.commands)-1]
	if want := []string{"kill-window", "-t", "@7"}; !reflect.DeepEqual(last, want) {
		t.Fatalf("expected unbind to kill @7, got %v", last)
	}
	if fake.windows["@7"] {
		t.Fatalf("expected player window @7 to be gone after unbind")
	}
}

func TestPlayerStatusTreatsMissingWindowAsExit(t *testing.T) {
	fake := newFakeClient()
	fake.outputs["new-window"] = "@8"
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	p := NewPlayerWindow("", []string{"mpv"})
	p.Bind("http://a")
	fake.displayErrs = []error{errors.New("can't find window: @8")}

	status, err := p.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Alive || status.WindowID != "" {
		t.Fatalf("expected exited player, got %#v", status)
	}
	if fake.closed != 0 {
		t.Fatalf("expected client to be kept, closed=%d", fake.closed)
	}
}

func TestPlayerRecordsFailures(t *testing.T) {
	fake := newFakeClient()
	fake.errs["new-window"] = errors.New("no server running")
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	p := NewPlayerWindow("", []string{"mpv"})
	p.Bind("http://a")
	if err := p.LastError(); err == nil || !strings.Contains(err.Error(), "no server running") {
		t.Fatalf("expected recorded start failure, got %v", err)
	}
	if fake.closed != 1 {
		t.Fatalf("expected failed client to be dropped, closed=%d", fake.closed)
	}

	fake.errs = map[string]error{}
	fake.outputs["new-window"] = "@5"
	p.Bind("http://a")
	if err := p.LastError(); err != nil {
		t.Fatalf("expected successful bind to clear error, got %v", err)
	}
}

func TestPlayerConnectFailure(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) { return nil, errors.New("dial failed") })
	p := NewPlayerWindow("", []string{"mpv"})
	p.Bind("http://a")
	if err := p.LastError(); err == nil || !strings.Contains(err.Error(), "connect to tmux") {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestPlayerEmptyCommand(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) {
		t.Fatalf("unexpected connection")
		return nil, nil
	})
	p := NewPlayerWindow("", nil)
	p.Bind("http://a")
	if p.LastError() == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestResolveSocketPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		got, err := ResolveSocketPath("/tmp/flag")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/tmp/flag" {
			t.Fatalf("expected /tmp/flag, got %q", got)
		}
	})
	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TMUX_STREAM_CATALOG_SOCKET", "/tmp/env")
		got, err := ResolveSocketPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/tmp/env" {
			t.Fatalf("expected /tmp/env, got %q", got)
		}
	})
	t.Run("tmux env fallback", func(t *testing.T) {
		t.Setenv("TMUX_STREAM_CATALOG_SOCKET", "")
		t.Setenv("TMUX", "/tmp/socket,123,0")
		got, err := ResolveSocketPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/tmp/socket" {
			t.Fatalf("expected /tmp/socket, got %q", got)
		}
	})
	t.Run("default path", func(t *testing.T) {
		t.Setenv("TMUX_STREAM_CATALOG_SOCKET", "")
		t.Setenv("TMUX", "")
		t.Setenv("TMUX_TMPDIR", "/tmp")
		u, _ := user.Current()
		got, err := ResolveSocketPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join("/tmp", "tmux-"+u.Uid, "default")
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})
}
