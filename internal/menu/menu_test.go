package menu

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/atomicstack/tmux-stream-catalog/internal/data/intent"
	"github.com/atomicstack/tmux-stream-catalog/internal/tmux"
	"github.com/google/uuid"
)

func testContext() Context {
	return Context{
		Channels: []ChannelEntry{
			{ID: "id-hbo", Name: "HBO", URL: "http://a/s.m3u8"},
			{ID: "id-espn", Name: "ESPN", URL: "http://b/s.m3u8", Playing: true},
		},
		SelectedID: "id-espn",
	}
}

func TestRootItemsOrder(t *testing.T) {
	var ids []string
	for _, item := range RootItems() {
		ids = append(ids, item.ID)
	}
	want := []string{"channels", "add", "remove", "copy", "stop"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
}

func TestChannelItemsMarkPlayingEntry(t *testing.T) {
	items := ChannelItems(testContext())
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "id-hbo" || items[0].Name != "HBO" {
		t.Fatalf("unexpected first item %#v", items[0])
	}
	if strings.HasPrefix(items[0].Label, playingMarker) {
		t.Fatalf("expected HBO not marked, got %q", items[0].Label)
	}
	if !strings.HasPrefix(items[1].Label, playingMarker) {
		t.Fatalf("expected ESPN marked as playing, got %q", items[1].Label)
	}
	if !strings.Contains(items[1].Label, "http://b/s.m3u8") {
		t.Fatalf("expected url in label, got %q", items[1].Label)
	}
	if ChannelItems(Context{}) != nil {
		t.Fatalf("expected no items for empty catalog")
	}
}

func TestChannelEntriesFromCatalog(t *testing.T) {
	store := catalog.NewStore(nil)
	hbo, _ := store.Create("HBO", "http://a")
	espn, _ := store.Create("ESPN", "http://b")
	entries := ChannelEntriesFromCatalog(store.List(), espn.ID)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != hbo.Key() || entries[0].Playing {
		t.Fatalf("unexpected HBO entry %#v", entries[0])
	}
	if !entries[1].Playing || entries[1].ThumbnailRef == "" {
		t.Fatalf("unexpected ESPN entry %#v", entries[1])
	}
	none := ChannelEntriesFromCatalog(store.List(), uuid.Nil)
	for _, entry := range none {
		if entry.Playing {
			t.Fatalf("expected nothing playing, got %#v", entry)
		}
	}
}

func TestPlayerStatusFromTmux(t *testing.T) {
	got := PlayerStatusFromTmux(tmux.PlayerStatus{WindowID: "@2", URL: "http://a", Alive: true, Err: errors.New("boom")})
	want := PlayerStatus{WindowID: "@2", URL: "http://a", Alive: true, Err: "boom"}
	if got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestChannelSelectActionEmitsIntent(t *testing.T) {
	msg := ChannelSelectAction(testContext(), Item{ID: "id-hbo"})()
	im, ok := msg.(IntentMsg)
	if !ok {
		t.Fatalf("expected IntentMsg, got %T", msg)
	}
	if im.Intent != (intent.Select{ID: "id-hbo"}) || im.Label != "HBO" {
		t.Fatalf("unexpected intent %#v", im)
	}
	if res, ok := ChannelSelectAction(testContext(), Item{})().(ActionResult); !ok || res.Err == nil {
		t.Fatalf("expected error for empty target")
	}
}

func TestChannelRemoveActionSplitsIDs(t *testing.T) {
	msg := ChannelRemoveAction(testContext(), Item{ID: "id-hbo\nid-espn\nid-hbo", Label: "HBO, ESPN"})()
	im, ok := msg.(IntentMsg)
	if !ok {
		t.Fatalf("expected IntentMsg, got %T", msg)
	}
	remove, ok := im.Intent.(intent.Remove)
	if !ok || !reflect.DeepEqual(remove.IDs, []string{"id-hbo", "id-espn"}) {
		t.Fatalf("unexpected remove intent %#v", im.Intent)
	}

	single := ChannelRemoveAction(testContext(), Item{ID: "id-espn"})().(IntentMsg)
	if single.Label != "ESPN" {
		t.Fatalf("expected single removal labelled by name, got %q", single.Label)
	}
}

func TestChannelStopAndAddActions(t *testing.T) {
	if im, ok := ChannelStopAction(testContext(), Item{})().(IntentMsg); !ok || im.Intent != (intent.Deselect{}) {
		t.Fatalf("expected deselect intent")
	}
	prompt, ok := ChannelAddAction(testContext(), Item{ID: "add"})().(ChannelPrompt)
	if !ok || len(prompt.Context.Channels) != 2 {
		t.Fatalf("expected channel prompt carrying context, got %#v", prompt)
	}
}

func TestChannelCopyAction(t *testing.T) {
	var copied string
	prevWrite, prevUnsupported := writeClipboardFn, clipboardUnsupported
	writeClipboardFn = func(text string) error {
		copied = text
		return nil
	}
	clipboardUnsupported = func() bool { return false }
	t.Cleanup(func() {
		writeClipboardFn = prevWrite
		clipboardUnsupported = prevUnsupported
	})

	res, ok := ChannelCopyAction(testContext(), Item{ID: "id-hbo"})().(ActionResult)
	if !ok || res.Err != nil {
		t.Fatalf("expected success, got %#v", res)
	}
	if copied != "http://a/s.m3u8" {
		t.Fatalf("expected url copied, got %q", copied)
	}

	res = ChannelCopyAction(testContext(), Item{ID: "missing"})().(ActionResult)
	if res.Err == nil {
		t.Fatalf("expected error for missing channel")
	}

	clipboardUnsupported = func() bool { return true }
	res = ChannelCopyAction(testContext(), Item{ID: "id-hbo"})().(ActionResult)
	if res.Err == nil {
		t.Fatalf("expected error without clipboard support")
	}
}

func TestRegistryWiresChannelNodes(t *testing.T) {
	reg := BuildRegistry()
	root := reg.Root()
	if len(root.Children) != len(Commands()) {
		t.Fatalf("expected a root child per command, got %d", len(root.Children))
	}
	for _, id := range []string{"channels", "remove", "copy"} {
		node := root.Children[id]
		if node == nil || node.Loader == nil || node.Action == nil {
			t.Fatalf("expected %s to load and act, got %#v", id, node)
		}
	}
	for _, id := range []string{"add", "stop"} {
		node, ok := reg.Find(id)
		if !ok || node.Action == nil || node.Loader != nil {
			t.Fatalf("expected %s to be a direct action", id)
		}
	}
	if node, _ := reg.Find("remove"); !node.MultiSelect {
		t.Fatalf("expected remove to allow multi-select")
	}
	if node, _ := reg.Find("channels"); node.MultiSelect {
		t.Fatalf("expected channels to be single-select")
	}
	if _, ok := reg.Find("missing"); ok {
		t.Fatalf("expected unknown id to be absent")
	}
}

func TestChannelLevelsFollowCommands(t *testing.T) {
	if got := ChannelLevels(); !reflect.DeepEqual(got, []string{"channels", "remove", "copy"}) {
		t.Fatalf("unexpected channel levels %v", got)
	}
	for id, want := range map[string]bool{"channels": true, "copy": true, "add": false, "root": false, "": false} {
		if got := IsChannelLevel(id); got != want {
			t.Fatalf("IsChannelLevel(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestRootItemsCarryLabels(t *testing.T) {
	for _, item := range RootItems() {
		if item.Label == "" || item.Label == item.ID {
			t.Fatalf("expected a descriptive label for %s, got %q", item.ID, item.Label)
		}
	}
	cmds := Commands()
	cmds[0].Label = "changed"
	if RootItems()[0].Label == "changed" {
		t.Fatalf("expected Commands to return a copy")
	}
}

func TestLoadChannelMenu(t *testing.T) {
	items, err := loadChannelMenu(Context{Channels: []ChannelEntry{{ID: "x", Name: "News", URL: "u", CreatedAt: time.Now()}}})
	if err != nil || len(items) != 1 || items[0].Name != "News" {
		t.Fatalf("unexpected load result %#v, %v", items, err)
	}
}
