package state

// SearchStore holds the transient search text. It never touches the catalog.
type SearchStore interface {
	Query() string
	SetQuery(string) bool
}

type searchStore struct {
	query string
}

func NewSearchStore() SearchStore {
	return &searchStore{}
}

func (s *searchStore) Query() string {
	return s.query
}

// SetQuery stores query and reports whether it differed from the previous one.
func (s *searchStore) SetQuery(query string) bool {
	if s.query == query {
		return false
	}
	s.query = query
	return true
}
