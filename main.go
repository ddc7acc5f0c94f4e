package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/tmux-stream-catalog/internal/app"
	"github.com/atomicstack/tmux-stream-catalog/internal/config"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/kballard/go-shellquote"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if logging.TraceEnabled() {
		events.App.Start(newStartupTrace(cfg))
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTrace is the first trace record of a run: how the catalog was seeded,
// where playback goes and what terminal the UI will draw on.
type startupTrace struct {
	Argv     []string          `json:"argv"`
	Flags    map[string]string `json:"flags"`
	Process  processInfo       `json:"process"`
	Catalog  catalogInfo       `json:"catalog"`
	Playback playbackInfo      `json:"playback"`
	Terminal terminalInfo      `json:"terminal"`
}

type processInfo struct {
	Executable string   `json:"executable,omitempty"`
	Cwd        string   `json:"cwd,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

type catalogInfo struct {
	Seeds             []string `json:"seeds"`
	ThumbnailTemplate string   `json:"thumbnailTemplate"`
	RootMenu          string   `json:"rootMenu,omitempty"`
}

type playbackInfo struct {
	Mode         string `json:"mode"`
	Player       string `json:"player,omitempty"`
	Socket       string `json:"socket,omitempty"`
	PollInterval string `json:"pollInterval"`
	KeepPlaying  bool   `json:"keepPlaying"`
}

type terminalInfo struct {
	Source  string           `json:"source,omitempty"`
	Width   int              `json:"width,omitempty"`
	Height  int              `json:"height,omitempty"`
	Streams []terminalStream `json:"streams"`
}

type terminalStream struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Error    string `json:"error,omitempty"`
}

func newStartupTrace(cfg config.Config) startupTrace {
	seeds := make([]string, len(cfg.App.Channels))
	for i, seed := range cfg.App.Channels {
		seeds[i] = seed.Name
	}
	trace := startupTrace{
		Argv:    cfg.Args,
		Flags:   cfg.Flags,
		Process: currentProcess(),
		Catalog: catalogInfo{
			Seeds:             seeds,
			ThumbnailTemplate: cfg.App.ThumbnailTemplate,
			RootMenu:          cfg.App.RootMenu,
		},
		Playback: playbackInfo{
			Mode:         cfg.App.Playback,
			Socket:       cfg.App.SocketPath,
			PollInterval: cfg.App.PollInterval.String(),
			KeepPlaying:  cfg.App.KeepPlaying,
		},
		Terminal: inspectTerminal(),
	}
	if cfg.App.Playback != app.PlaybackNone {
		trace.Playback.Player = shellquote.Join(cfg.App.PlayerCommand...)
	}
	return trace
}

func currentProcess() processInfo {
	var info processInfo
	if exe, err := os.Executable(); err != nil {
		info.Errors = append(info.Errors, "executable: "+err.Error())
	} else {
		info.Executable = exe
	}
	if cwd, err := os.Getwd(); err != nil {
		info.Errors = append(info.Errors, "cwd: "+err.Error())
	} else {
		info.Cwd = cwd
	}
	return info
}

// inspectTerminal reports which standard streams are terminals. The size
// comes from the first one that answers, stdout preferred.
func inspectTerminal() terminalInfo {
	streams := []struct {
		name string
		file *os.File
	}{
		{"stdout", os.Stdout},
		{"stdin", os.Stdin},
		{"stderr", os.Stderr},
	}
	info := terminalInfo{Streams: make([]terminalStream, 0, len(streams))}
	for _, s := range streams {
		fd := int(s.file.Fd())
		stream := terminalStream{Name: s.name, Terminal: term.IsTerminal(fd)}
		if stream.Terminal {
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				stream.Error = err.Error()
			case info.Source == "":
				info.Source, info.Width, info.Height = s.name, width, height
			}
		}
		info.Streams = append(info.Streams, stream)
	}
	return info
}
