package app

import (
	"path/filepath"
	"testing"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging"
	"github.com/atomicstack/tmux-stream-catalog/internal/selection"
)

func TestNewSessionSeedsChannelsWithoutPlayer(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "app.log"))
	t.Cleanup(func() { logging.Configure("") })

	s, err := newSession(Config{
		Playback:          PlaybackNone,
		ThumbnailTemplate: "thumb://{name}",
		Channels: []Seed{
			{Name: "HBO", URL: "http://a"},
			{Name: " ", URL: "http://skipped"},
			{Name: "ESPN", URL: "http://b"},
		},
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer s.close(false)

	if s.player != nil {
		t.Fatalf("expected no tmux player for none playback")
	}
	list := s.store.List()
	if len(list) != 2 || list[0].Name != "HBO" || list[1].Name != "ESPN" {
		t.Fatalf("unexpected seeded catalog %#v", list)
	}
	if list[0].ThumbnailRef != "thumb://HBO" {
		t.Fatalf("expected configured template, got %q", list[0].ThumbnailRef)
	}
	if _, ok := <-s.watcher.Events(); ok {
		t.Fatalf("expected watcher without source to be closed")
	}
}

func TestSessionCloseClearsSelection(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "app.log"))
	t.Cleanup(func() { logging.Configure("") })

	s, err := newSession(Config{Playback: PlaybackNone, Channels: []Seed{{Name: "HBO", URL: "http://a"}}})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.controller.Select(s.store.List()[0].ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.close(false)
	if s.controller.State() != selection.StateEmpty {
		t.Fatalf("expected selection cleared on close")
	}
}

func TestSessionCloseKeepPlaying(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "app.log"))
	t.Cleanup(func() { logging.Configure("") })

	s, err := newSession(Config{Playback: PlaybackNone, Channels: []Seed{{Name: "HBO", URL: "http://a"}}})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.controller.Select(s.store.List()[0].ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.close(true)
	if s.controller.State() != selection.StateBound {
		t.Fatalf("expected selection kept with keep-playing")
	}
}

func TestSessionCloseDetachesModel(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "app.log"))
	t.Cleanup(func() { logging.Configure("") })

	s, err := newSession(Config{Playback: PlaybackNone, Channels: []Seed{{Name: "HBO", URL: "http://a"}}})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	model := s.newModel(Config{RootMenu: "channels"})
	if model == nil || s.model != model {
		t.Fatalf("expected session to own the model")
	}
	if err := s.controller.Select(s.store.List()[0].ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.close(false)
	if s.model != nil {
		t.Fatalf("expected model detached on close")
	}
	if _, err := s.store.Create("ESPN", "http://b"); err != nil {
		t.Fatalf("create after close: %v", err)
	}
	s.close(false)
}
