package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-stream-catalog/internal/app"
	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/kballard/go-shellquote"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSocketPath   = "TMUX_STREAM_CATALOG_SOCKET"
	envWidth        = "TMUX_STREAM_CATALOG_WIDTH"
	envHeight       = "TMUX_STREAM_CATALOG_HEIGHT"
	envShowFooter   = "TMUX_STREAM_CATALOG_FOOTER"
	envVerbose      = "TMUX_STREAM_CATALOG_VERBOSE"
	envTrace        = "TMUX_STREAM_CATALOG_TRACE"
	envLogFile      = "TMUX_STREAM_CATALOG_LOG_FILE"
	envRootMenu     = "TMUX_STREAM_CATALOG_ROOT_MENU"
	envPlayback     = "TMUX_STREAM_CATALOG_PLAYBACK"
	envPlayer       = "TMUX_STREAM_CATALOG_PLAYER"
	envThumbnail    = "TMUX_STREAM_CATALOG_THUMBNAIL_TEMPLATE"
	envPollInterval = "TMUX_STREAM_CATALOG_POLL_INTERVAL"
	envKeepPlaying  = "TMUX_STREAM_CATALOG_KEEP_PLAYING"
	envChannels     = "TMUX_STREAM_CATALOG_CHANNELS"
)

const (
	defaultPlayer       = "mpv --force-window=yes"
	defaultPollInterval = 1500 * time.Millisecond
)

// seedFlags collects the raw values of repeated -channel flags. They are
// parsed after the flag set so seed errors keep their wrapped cause.
type seedFlags []string

func (c *seedFlags) String() string {
	if c == nil {
		return ""
	}
	return strings.Join(*c, ",")
}

func (c *seedFlags) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// parseSeeds turns name=url pairs into seeds, tagging errors with source.
func parseSeeds(source string, values []string) ([]app.Seed, error) {
	seeds := make([]app.Seed, 0, len(values))
	for _, value := range values {
		seed, err := parseSeed(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

func parseSeed(value string) (app.Seed, error) {
	name, url, ok := strings.Cut(value, "=")
	if !ok {
		return app.Seed{}, fmt.Errorf("channel %q: expected name=url", value)
	}
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" || url == "" {
		return app.Seed{}, fmt.Errorf("channel %q: %w", value, catalog.ErrInvalidInput)
	}
	return app.Seed{Name: name, URL: url}, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tmux-stream-catalog", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show channel ids and the player window in the details panel")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	rootMenu := fs.String("root-menu", envOrDefault(env, envRootMenu, ""), "open directly on a submenu (channels, remove, copy)")
	playbackMode := fs.String("playback", envOrDefault(env, envPlayback, app.PlaybackTmux), "playback surface: tmux or none")
	player := fs.String("player", envOrDefault(env, envPlayer, defaultPlayer), "player command; the stream url is appended")
	thumbnail := fs.String("thumbnail-template", envOrDefault(env, envThumbnail, catalog.DefaultThumbnailTemplate), "thumbnail url template; {name} is replaced by the encoded channel name")
	pollInterval := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, defaultPollInterval), "how often to check the player window")
	keepPlaying := fs.Bool("keep-playing", envOrBool(env, envKeepPlaying, false), "leave the player running on exit")

	var envSeeds []string
	if raw, ok := env[envChannels]; ok && strings.TrimSpace(raw) != "" {
		words, err := shellquote.Split(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envChannels, err)
		}
		envSeeds = words
	}
	var flagSeeds seedFlags
	fs.Var(&flagSeeds, "channel", "seed a channel as name=url (repeatable)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	channels, err := parseSeeds(envChannels, envSeeds)
	if err != nil {
		return Config{}, err
	}
	fromFlags, err := parseSeeds("-channel", flagSeeds)
	if err != nil {
		return Config{}, err
	}
	channels = append(channels, fromFlags...)

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	playerArgv, err := shellquote.Split(*player)
	if err != nil {
		return Config{}, fmt.Errorf("player command: %w", err)
	}

	cfg := Config{
		App: app.Config{
			SocketPath:        *socket,
			Width:             *width,
			Height:            *height,
			ShowFooter:        *footer,
			Verbose:           *verbose,
			RootMenu:          *rootMenu,
			Playback:          strings.ToLower(strings.TrimSpace(*playbackMode)),
			PlayerCommand:     playerArgv,
			ThumbnailTemplate: *thumbnail,
			PollInterval:      *pollInterval,
			KeepPlaying:       *keepPlaying,
			Channels:          channels,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"socket":            *socket,
			"width":             strconv.Itoa(*width),
			"height":            strconv.Itoa(*height),
			"footer":            strconv.FormatBool(*footer),
			"trace":             strconv.FormatBool(*trace),
			"verbose":           strconv.FormatBool(*verbose),
			"logFile":           *logFile,
			"rootMenu":          *rootMenu,
			"playback":          *playbackMode,
			"player":            *player,
			"thumbnailTemplate": *thumbnail,
			"pollInterval":      pollInterval.String(),
			"keepPlaying":       strconv.FormatBool(*keepPlaying),
			"channels":          strconv.Itoa(len(channels)),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	var errs []error
	switch cfg.App.Playback {
	case app.PlaybackTmux:
		if len(cfg.App.PlayerCommand) == 0 {
			errs = append(errs, errors.New("player command required for tmux playback"))
		}
	case app.PlaybackNone:
	default:
		errs = append(errs, fmt.Errorf("unknown playback mode %q (want %s or %s)", cfg.App.Playback, app.PlaybackTmux, app.PlaybackNone))
	}
	if cfg.App.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be > 0 (got %s)", cfg.App.PollInterval))
	}
	return errors.Join(errs...)
}
