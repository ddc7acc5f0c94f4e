// Package intent defines the user requests applied to the channel catalog.
package intent

// Intent is one user request. Kind names it for tracing.
type Intent interface {
	Kind() string
}

// Add creates a channel from the supplied name and url.
type Add struct {
	Name string
	URL  string
}

// Remove deletes every listed channel id. Unknown ids are ignored.
type Remove struct {
	IDs []string
}

// SetSearch replaces the search text used to derive the visible list.
type SetSearch struct {
	Query string
}

// Select binds the channel with the given id to the playback surface.
type Select struct {
	ID string
}

// Deselect stops playback and empties the selection.
type Deselect struct{}

func (Add) Kind() string       { return "add" }
func (Remove) Kind() string    { return "remove" }
func (SetSearch) Kind() string { return "set-search" }
func (Select) Kind() string    { return "select" }
func (Deselect) Kind() string  { return "deselect" }
