package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/google/uuid"
)

// ChangeKind identifies the mutation carried by a Change notification.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change describes a committed catalog mutation.
type Change struct {
	Kind  ChangeKind
	Entry Entry
}

// Listener receives catalog changes synchronously after they are committed.
type Listener func(Change)

var (
	newID = func() uuid.UUID {
		if id, err := uuid.NewV7(); err == nil {
			return id
		}
		return uuid.New()
	}
	now = time.Now
)

// Store owns the session's channel entries. Entries live in an id-keyed map
// while order holds their insertion order. The store is not safe for
// concurrent use; all calls are expected from a single goroutine.
type Store struct {
	entries   map[uuid.UUID]Entry
	order     []uuid.UUID
	issued    map[uuid.UUID]struct{}
	thumbs    Thumbnailer
	listeners []*subscription
}

type subscription struct {
	fn Listener
}

// NewStore returns an empty catalog. A nil thumbnailer uses the default
// placeholder template.
func NewStore(thumbs Thumbnailer) *Store {
	if thumbs == nil {
		thumbs = Template(DefaultThumbnailTemplate)
	}
	return &Store{
		entries: make(map[uuid.UUID]Entry),
		issued:  make(map[uuid.UUID]struct{}),
		thumbs:  thumbs,
	}
}

// Create validates and appends a new entry. Name and url are trimmed; either
// one being blank fails with ErrInvalidInput and leaves the store untouched.
func (s *Store) Create(name, url string) (Entry, error) {
	trimmedName := strings.TrimSpace(name)
	trimmedURL := strings.TrimSpace(url)
	if trimmedName == "" || trimmedURL == "" {
		events.Catalog.Invalid(name, url)
		switch {
		case trimmedName == "" && trimmedURL == "":
			return Entry{}, fmt.Errorf("channel name and url required: %w", ErrInvalidInput)
		case trimmedName == "":
			return Entry{}, fmt.Errorf("channel name required: %w", ErrInvalidInput)
		default:
			return Entry{}, fmt.Errorf("channel url required: %w", ErrInvalidInput)
		}
	}
	entry := Entry{
		ID:           s.freshID(),
		Name:         trimmedName,
		URL:          trimmedURL,
		ThumbnailRef: s.thumbs.Ref(trimmedName),
		CreatedAt:    now(),
	}
	s.entries[entry.ID] = entry
	s.order = append(s.order, entry.ID)
	events.Catalog.Create(entry.Key(), entry.Name, entry.URL)
	s.notify(Change{Kind: ChangeAdded, Entry: entry})
	return entry, nil
}

// freshID returns an id that has never been issued by this store.
func (s *Store) freshID() uuid.UUID {
	for {
		id := newID()
		if id == uuid.Nil {
			continue
		}
		if _, seen := s.issued[id]; seen {
			continue
		}
		s.issued[id] = struct{}{}
		return id
	}
}

// Remove deletes the entry with the given id and reports whether it existed.
func (s *Store) Remove(id uuid.UUID) bool {
	entry, ok := s.entries[id]
	if !ok {
		events.Catalog.Remove(id.String(), false)
		return false
	}
	delete(s.entries, id)
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	events.Catalog.Remove(id.String(), true)
	s.notify(Change{Kind: ChangeRemoved, Entry: entry})
	return true
}

// Get resolves an id against the live collection.
func (s *Store) Get(id uuid.UUID) (Entry, bool) {
	entry, ok := s.entries[id]
	return entry, ok
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return len(s.order)
}

// List returns every entry in insertion order.
func (s *Store) List() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

// Filter returns the entries whose name contains query, ignoring case. The
// result is derived from List on every call.
func (s *Store) Filter(query string) []Entry {
	all := s.List()
	if query == "" {
		return all
	}
	matches := make([]Entry, 0, len(all))
	for _, entry := range all {
		if ContainsFold(entry.Name, query) {
			matches = append(matches, entry)
		}
	}
	events.Catalog.Search(query, len(matches))
	return matches
}

// Subscribe registers fn for future changes. Listeners run in subscription
// order. The returned func removes the registration.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}
	s.listeners = append(s.listeners, sub)
	return func() {
		for i, candidate := range s.listeners {
			if candidate == sub {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(change Change) {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := make([]*subscription, len(s.listeners))
	copy(snapshot, s.listeners)
	for _, sub := range snapshot {
		sub.fn(change)
	}
}
