package ui

import (
	"errors"
	"strings"

	"github.com/atomicstack/tmux-stream-catalog/internal/data/intent"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	"github.com/atomicstack/tmux-stream-catalog/internal/selection"
	uistate "github.com/atomicstack/tmux-stream-catalog/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.clearPending()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

// handleIntentMsg applies an intent produced by a menu action. Intents run
// here, on the update loop, so the catalog is only ever touched from one
// goroutine.
func (m *Model) handleIntentMsg(msg tea.Msg) tea.Cmd {
	im, ok := msg.(menu.IntentMsg)
	if !ok {
		return nil
	}
	m.clearPending()
	res := m.dispatcher.Apply(im.Intent)
	if res.Err != nil {
		m.errMsg = intentError(res.Err)
		m.forceClearInfo()
		return nil
	}
	m.errMsg = ""
	if res.Info != "" {
		m.setInfo(res.Info)
		events.Action.Success(res.Info)
	}
	if _, removed := im.Intent.(intent.Remove); removed {
		if current := m.currentLevel(); current != nil {
			current.ClearMarks()
		}
	}
	return nil
}

func intentError(err error) string {
	if errors.Is(err, selection.ErrNotFound) {
		return "Channel no longer exists"
	}
	return err.Error()
}

func (m *Model) clearPending() {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
}

func (m *Model) loadMenuCmd(id, title string, loader menu.Loader) tea.Cmd {
	ctx := m.menuContext()
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	items []menu.Item
	err   error
}

// menuContext snapshots the catalog for loaders and actions, which run off
// the update loop and must not read the store directly.
func (m *Model) menuContext() menu.Context {
	binding := m.controller.Binding()
	ctx := menu.Context{
		Channels: menu.ChannelEntriesFromCatalog(m.store.List(), binding.ID),
		Player:   m.player.Status(),
	}
	if !binding.Empty() {
		ctx.SelectedID = binding.ID.String()
	}
	return ctx
}

// refreshChannelLevels rebuilds every open channel list after the catalog or
// the selection changed.
func (m *Model) refreshChannelLevels() {
	if !m.channelsDirty {
		return
	}
	m.channelsDirty = false
	items := menu.ChannelItems(m.menuContext())
	for _, id := range menu.ChannelLevels() {
		lvl := m.findLevelByID(id)
		if lvl == nil {
			continue
		}
		lvl.UpdateItems(items)
		m.syncViewport(lvl)
		events.UI.Refresh(id, len(lvl.Items))
	}
}

// syncSearch mirrors the filter of the visible channel list into the search
// store. Other levels leave the search empty.
func (m *Model) syncSearch() {
	current := m.currentLevel()
	if current == nil {
		m.setSearch("", "")
		return
	}
	query := ""
	if menu.IsChannelLevel(current.ID) {
		query = current.Filter
	}
	m.setSearch(current.ID, query)
}

func (m *Model) setSearch(levelID, query string) {
	query = strings.TrimSpace(query)
	if query == m.search.Query() {
		return
	}
	if res := m.dispatcher.Apply(intent.SetSearch{Query: query}); res.SearchUpdated {
		events.Filter.Search(levelID, query)
	}
}

// channelMatcher filters a channel list through the search store, so the rows
// shown are the derived view and agree with the "N of M" summary.
func (m *Model) channelMatcher(levelID string) uistate.Matcher {
	return func(items []menu.Item, query string) []menu.Item {
		m.setSearch(levelID, query)
		byID := make(map[string]menu.Item, len(items))
		for _, item := range items {
			byID[item.ID] = item
		}
		view := m.dispatcher.View()
		visible := make([]menu.Item, 0, len(view))
		for _, entry := range view {
			if item, ok := byID[entry.Key()]; ok {
				visible = append(visible, item)
			}
		}
		return visible
	}
}
