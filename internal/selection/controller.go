package selection

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/atomicstack/tmux-stream-catalog/internal/playback"
	"github.com/google/uuid"
)

// ErrNotFound reports a selection request for an id the catalog does not hold.
var ErrNotFound = errors.New("channel not found")

// State is the controller's position in the Empty/Bound machine.
type State int

const (
	StateEmpty State = iota
	StateBound
)

func (s State) String() string {
	if s == StateBound {
		return "bound"
	}
	return "empty"
}

// Binding pairs the selected entry's id with the url handed to the surface.
// The zero value is the empty binding.
type Binding struct {
	ID  uuid.UUID
	URL string
}

// Empty reports whether b binds nothing.
func (b Binding) Empty() bool {
	return b.ID == uuid.Nil
}

// Reason explains a selection change.
type Reason int

const (
	ReasonSelected Reason = iota
	ReasonCleared
	ReasonRemoved
)

func (r Reason) String() string {
	switch r {
	case ReasonSelected:
		return "selected"
	case ReasonCleared:
		return "cleared"
	case ReasonRemoved:
		return "removed"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Change is delivered to subscribers after the binding has been replaced.
type Change struct {
	Previous Binding
	Current  Binding
	Reason   Reason
}

// Controller tracks which catalog entry, if any, is bound to the playback
// surface. Like the store it observes, it expects calls from one goroutine.
type Controller struct {
	store     *catalog.Store
	surface   playback.Surface
	binding   Binding
	listeners []*subscription
	detach    func()
}

type subscription struct {
	fn func(Change)
}

// NewController returns an empty controller wired to the store's removal
// notifications. A nil surface discards bindings.
func NewController(store *catalog.Store, surface playback.Surface) *Controller {
	if surface == nil {
		surface = playback.Discard{}
	}
	c := &Controller{store: store, surface: surface}
	c.detach = store.Subscribe(func(change catalog.Change) {
		if change.Kind == catalog.ChangeRemoved {
			c.ReconcileAfterRemoval(change.Entry.ID)
		}
	})
	return c
}

// Close detaches the controller from the store.
func (c *Controller) Close() {
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
}

// Select binds id. Unknown ids fail with ErrNotFound and leave the current
// binding in place. Selecting the id that is already bound does nothing.
func (c *Controller) Select(id uuid.UUID) error {
	entry, ok := c.store.Get(id)
	if !ok {
		events.Selection.NotFound(id.String())
		return fmt.Errorf("select %s: %w", id, ErrNotFound)
	}
	if c.binding.ID == entry.ID {
		return nil
	}
	prev := c.binding
	c.binding = Binding{ID: entry.ID, URL: entry.URL}
	c.surface.Bind(entry.URL)
	events.Selection.Select(entry.Key(), entry.URL)
	c.notify(Change{Previous: prev, Current: c.binding, Reason: ReasonSelected})
	return nil
}

// Current resolves the bound entry through the store.
func (c *Controller) Current() (catalog.Entry, bool) {
	if c.binding.Empty() {
		return catalog.Entry{}, false
	}
	return c.store.Get(c.binding.ID)
}

// Binding returns the current binding.
func (c *Controller) Binding() Binding {
	return c.binding
}

// State reports whether anything is bound.
func (c *Controller) State() State {
	if c.binding.Empty() {
		return StateEmpty
	}
	return StateBound
}

// Clear empties the selection.
func (c *Controller) Clear() {
	c.clear(ReasonCleared)
}

// ReconcileAfterRemoval clears the selection when removedID was bound.
func (c *Controller) ReconcileAfterRemoval(removedID uuid.UUID) {
	if c.binding.Empty() || c.binding.ID != removedID {
		return
	}
	c.clear(ReasonRemoved)
}

func (c *Controller) clear(reason Reason) {
	if c.binding.Empty() {
		return
	}
	prev := c.binding
	c.binding = Binding{}
	c.surface.Unbind()
	traceReason := events.SelectionReasonDeselect
	if reason == ReasonRemoved {
		traceReason = events.SelectionReasonRemoved
	}
	events.Selection.Clear(prev.ID.String(), traceReason)
	c.notify(Change{Previous: prev, Reason: reason})
}

// Subscribe registers fn for future selection changes and returns a func
// that removes it.
func (c *Controller) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}
	c.listeners = append(c.listeners, sub)
	return func() {
		for i, candidate := range c.listeners {
			if candidate == sub {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) notify(change Change) {
	snapshot := make([]*subscription, len(c.listeners))
	copy(snapshot, c.listeners)
	for _, sub := range snapshot {
		sub.fn(change)
	}
}
