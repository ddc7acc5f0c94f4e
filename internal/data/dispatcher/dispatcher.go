package dispatcher

import (
	"fmt"

	"github.com/atomicstack/tmux-stream-catalog/internal/backend"
	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/atomicstack/tmux-stream-catalog/internal/data/intent"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	"github.com/atomicstack/tmux-stream-catalog/internal/selection"
	"github.com/atomicstack/tmux-stream-catalog/internal/state"
	"github.com/atomicstack/tmux-stream-catalog/internal/tmux"
)

type Result struct {
	CatalogUpdated   bool
	SelectionUpdated bool
	SearchUpdated    bool
	PlayerUpdated    bool

	Entry   catalog.Entry
	Removed int
	Info    string
	Err     error
}

type Dispatcher struct {
	store      *catalog.Store
	controller *selection.Controller
	search     state.SearchStore
	player     state.PlayerStore
}

func New(store *catalog.Store, controller *selection.Controller, search state.SearchStore, player state.PlayerStore) *Dispatcher {
	return &Dispatcher{store: store, controller: controller, search: search, player: player}
}

// Apply runs one intent against the catalog first and lets the selection
// reconcile through its store subscription.
func (d *Dispatcher) Apply(in intent.Intent) Result {
	if in == nil {
		return Result{}
	}
	events.Intent.Apply(in.Kind())
	before := d.controller.Binding()
	var res Result
	switch v := in.(type) {
	case intent.Add:
		res = d.add(v)
	case intent.Remove:
		res = d.remove(v)
	case intent.SetSearch:
		res.SearchUpdated = d.search.SetQuery(v.Query)
	case intent.Select:
		res = d.selectChannel(v)
	case intent.Deselect:
		res = d.deselect()
	default:
		res.Err = fmt.Errorf("unsupported intent %q", in.Kind())
	}
	if d.controller.Binding() != before {
		res.SelectionUpdated = true
	}
	if res.Err != nil {
		events.Action.Error(res.Err)
	}
	return res
}

// View derives the visible channels from the catalog and the search text.
func (d *Dispatcher) View() []catalog.Entry {
	return d.store.Filter(d.search.Query())
}

func (d *Dispatcher) add(in intent.Add) Result {
	entry, err := d.store.Create(in.Name, in.URL)
	if err != nil {
		return Result{Err: err}
	}
	return Result{CatalogUpdated: true, Entry: entry, Info: fmt.Sprintf("Added %s", entry.Name)}
}

func (d *Dispatcher) remove(in intent.Remove) Result {
	var res Result
	var last string
	playing := d.controller.Binding()
	stopped := false
	for _, raw := range in.IDs {
		id, ok := catalog.ParseKey(raw)
		if !ok {
			continue
		}
		entry, found := d.store.Get(id)
		if !found || !d.store.Remove(id) {
			continue
		}
		res.Removed++
		last = entry.Name
		if !playing.Empty() && playing.ID == id {
			stopped = true
		}
	}
	res.CatalogUpdated = res.Removed > 0
	switch res.Removed {
	case 0:
		res.Info = "Nothing removed"
	case 1:
		res.Info = fmt.Sprintf("Removed %s", last)
	default:
		res.Info = fmt.Sprintf("Removed %d channels", res.Removed)
	}
	if stopped {
		res.Info += ". Playback stopped"
	}
	return res
}

func (d *Dispatcher) selectChannel(in intent.Select) Result {
	id, ok := catalog.ParseKey(in.ID)
	if !ok {
		return Result{Err: fmt.Errorf("select %q: %w", in.ID, selection.ErrNotFound)}
	}
	if err := d.controller.Select(id); err != nil {
		return Result{Err: err}
	}
	entry, _ := d.controller.Current()
	return Result{Info: fmt.Sprintf("Playing %s", entry.Name)}
}

func (d *Dispatcher) deselect() Result {
	if d.controller.State() == selection.StateEmpty {
		return Result{Info: "Nothing playing"}
	}
	d.controller.Clear()
	return Result{Info: "Playback stopped"}
}

// Handle folds a backend event into the view stores.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindPlayer:
		if status, ok := evt.Data.(tmux.PlayerStatus); ok {
			next := menu.PlayerStatusFromTmux(status)
			if !d.player.Observed() || d.player.Status() != next {
				d.player.SetStatus(next)
				res.PlayerUpdated = true
			}
		}
	}
	return res
}
