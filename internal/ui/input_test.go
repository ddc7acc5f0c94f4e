package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestHandleTextInputAppendsRunes(t *testing.T) {
	f := newFixture(t, Options{})
	current := f.model.currentLevel()
	current.UpdateItems([]menu.Item{{ID: "one"}})
	handled, _ := f.model.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	if !handled {
		t.Fatalf("expected key press to be handled")
	}
	if current.Filter != "abc" {
		t.Fatalf("expected filter 'abc', got %q", current.Filter)
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor at end, got %d", pos)
	}
}

func TestHandleTextInputCursorMovement(t *testing.T) {
	f := newFixture(t, Options{})
	current := f.model.currentLevel()
	current.UpdateItems([]menu.Item{{ID: "one"}})
	current.SetFilter("abc", 3)

	if handled, _ := f.model.handleTextInput(tea.KeyMsg{Type: tea.KeyLeft}); !handled {
		t.Fatalf("expected left arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 2 {
		t.Fatalf("expected cursor at 2 after left, got %d", pos)
	}

	if handled, _ := f.model.handleTextInput(tea.KeyMsg{Type: tea.KeyRight}); !handled {
		t.Fatalf("expected right arrow to be handled")
	}
	if pos := current.FilterCursorPos(); pos != 3 {
		t.Fatalf("expected cursor back at 3, got %d", pos)
	}
}

func TestHandleTextInputIgnoredWhileLoading(t *testing.T) {
	f := newFixture(t, Options{})
	f.model.loading = true
	if handled, _ := f.model.handleTextInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); handled {
		t.Fatalf("expected input ignored while loading")
	}
	if f.model.currentLevel().Filter != "" {
		t.Fatalf("expected filter untouched")
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	f := newFixture(t, Options{})
	prompt, _ := f.model.filterPrompt()
	if !strings.Contains(ansi.Strip(prompt), "type to search") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
}

func TestFilterPromptPlaceholderOnChannelLevel(t *testing.T) {
	f := newFixture(t, Options{}, "HBO")
	f.open(t, "channels")
	prompt, _ := f.model.filterPrompt()
	if !strings.Contains(ansi.Strip(prompt), "type to filter channels by name") {
		t.Fatalf("expected channel placeholder in prompt, got %q", prompt)
	}
}

func TestFilterMatchesChannelNamesAndSyncsSearch(t *testing.T) {
	f := newFixture(t, Options{}, "HBO", "ESPN", "Sky News")
	f.open(t, "channels")
	f.harness.Type("bo")

	level := f.model.currentLevel()
	if len(level.Items) != 1 || level.Items[0].Name != "HBO" {
		t.Fatalf("expected only HBO visible, got %#v", level.Items)
	}
	if got := f.model.search.Query(); got != "bo" {
		t.Fatalf("expected search query bo, got %q", got)
	}
	if view := f.view(); !strings.Contains(view, "1 of 3 channels") {
		t.Fatalf("expected filtered summary in view, got:\n%s", view)
	}

	f.harness.Press(tea.KeyEsc)
	if got := f.model.search.Query(); got != "" {
		t.Fatalf("expected search cleared after leaving the list, got %q", got)
	}
}

func TestFilterIgnoresURLs(t *testing.T) {
	f := newFixture(t, Options{}, "HBO", "ESPN")
	f.open(t, "channels")
	f.harness.Type("example")
	if items := f.model.currentLevel().Items; len(items) != 0 {
		t.Fatalf("expected url text not to match, got %#v", items)
	}
}

func TestFilterWithSurroundingSpacesIsTrimmed(t *testing.T) {
	f := newFixture(t, Options{}, "Sky News", "ESPN")
	f.open(t, "channels")
	f.harness.Type(" news ")
	level := f.model.currentLevel()
	if len(level.Items) != 1 || level.Items[0].Name != "Sky News" {
		t.Fatalf("expected Sky News visible, got %#v", level.Items)
	}
	if got := f.model.search.Query(); got != "news" {
		t.Fatalf("expected trimmed search query, got %q", got)
	}
}

func TestDeleteKeyRemovesFocusedChannel(t *testing.T) {
	f := newFixture(t, Options{}, "HBO", "ESPN")
	f.open(t, "channels")
	f.point(t, "HBO")
	f.harness.Press(tea.KeyDelete)

	if f.store.Len() != 1 || f.store.List()[0].Name != "ESPN" {
		t.Fatalf("expected HBO removed, got %#v", f.store.List())
	}
	if got := f.model.currentInfo(); got != "Removed HBO" {
		t.Fatalf("unexpected info %q", got)
	}
	level := f.model.currentLevel()
	if len(level.Items) != 1 || level.Items[0].Name != "ESPN" {
		t.Fatalf("expected channel list refreshed, got %#v", level.Items)
	}
}

func TestDeleteKeyIgnoredOutsideChannelLists(t *testing.T) {
	f := newFixture(t, Options{}, "HBO")
	f.harness.Press(tea.KeyDelete)
	if f.store.Len() != 1 {
		t.Fatalf("expected catalog untouched on the root menu")
	}

	f.store.Remove(f.entry(t, "HBO").ID)
	f.open(t, "channels")
	f.harness.Press(tea.KeyDelete)
	if got := f.model.currentInfo(); !strings.Contains(got, "No channels yet") {
		t.Fatalf("expected empty hint kept, got %q", got)
	}
}

func TestCtrlSStopsPlayback(t *testing.T) {
	f := newFixture(t, Options{}, "HBO", "ESPN")
	f.open(t, "channels")
	f.point(t, "ESPN")
	f.harness.Press(tea.KeyEnter)
	if _, bound := f.recorder.Bound(); !bound {
		t.Fatalf("expected ESPN playing")
	}

	f.harness.Press(tea.KeyCtrlS)
	if _, bound := f.recorder.Bound(); bound {
		t.Fatalf("expected playback stopped")
	}
	if got := f.model.currentInfo(); got != "Playback stopped" {
		t.Fatalf("unexpected info %q", got)
	}
	if f.store.Len() != 2 {
		t.Fatalf("expected catalog untouched")
	}
}

func visibleKeys(f *fixture) (shown, derived []string) {
	for _, item := range f.model.currentLevel().Items {
		shown = append(shown, item.ID)
	}
	for _, entry := range f.model.dispatcher.View() {
		derived = append(derived, entry.Key())
	}
	return shown, derived
}

func TestChannelListShowsDerivedView(t *testing.T) {
	f := newFixture(t, Options{}, "HBO", "ESPN", "Sky News", "HBO Max")
	f.open(t, "channels")

	// fuzzy label matching would list ESPN and Sky News here
	f.harness.Type("sn")
	shown, derived := visibleKeys(f)
	if len(shown) != 0 || len(derived) != 0 {
		t.Fatalf("expected no rows for sn, shown=%v derived=%v", shown, derived)
	}

	if _, err := f.store.Create("Snooker", streamURL("Snooker")); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.harness.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	shown, derived = visibleKeys(f)
	if !reflect.DeepEqual(shown, derived) || len(shown) != 1 || shown[0] != f.entry(t, "Snooker").Key() {
		t.Fatalf("expected Snooker from the derived view, shown=%v derived=%v", shown, derived)
	}

	f.harness.Press(tea.KeyCtrlU)
	f.harness.Type("hbo")
	shown, derived = visibleKeys(f)
	want := []string{f.entry(t, "HBO").Key(), f.entry(t, "HBO Max").Key()}
	if !reflect.DeepEqual(shown, want) || !reflect.DeepEqual(derived, want) {
		t.Fatalf("expected catalog order for hbo, shown=%v derived=%v", shown, derived)
	}
	if view := f.view(); !strings.Contains(view, "2 of 5 channels") {
		t.Fatalf("expected summary to agree with the list, got:\n%s", view)
	}
}
