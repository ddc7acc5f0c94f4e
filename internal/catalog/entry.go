package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a named reference to a playable stream URL. Entries are immutable
// once created; the store hands out copies.
type Entry struct {
	ID           uuid.UUID
	Name         string
	URL          string
	ThumbnailRef string
	CreatedAt    time.Time
}

// Key returns the string form of the entry id used by menus and intents.
func (e Entry) Key() string {
	return e.ID.String()
}

// ParseKey converts a view-layer key back into an entry id.
func ParseKey(key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(key)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
