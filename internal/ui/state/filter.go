package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Matcher narrows the full item list of a level to the rows shown for query.
type Matcher func(items []menu.Item, query string) []menu.Item

// FilterEdit is a destructive change to the filter text.
type FilterEdit int

const (
	EditClear FilterEdit = iota
	EditRuneBackward
	EditWordBackward
)

func (e FilterEdit) String() string {
	switch e {
	case EditClear:
		return "clear"
	case EditRuneBackward:
		return "rune-backspace"
	case EditWordBackward:
		return "word-backspace"
	}
	return "unknown"
}

// FilterMove repositions the filter cursor without changing the text.
type FilterMove int

const (
	FilterStart FilterMove = iota
	FilterEnd
	FilterRuneBackward
	FilterRuneForward
	FilterWordBackward
	FilterWordForward
)

func (m FilterMove) String() string {
	switch m {
	case FilterStart:
		return "start"
	case FilterEnd:
		return "end"
	case FilterRuneBackward:
		return "rune-back"
	case FilterRuneForward:
		return "rune-forward"
	case FilterWordBackward:
		return "word-back"
	case FilterWordForward:
		return "word-forward"
	}
	return "unknown"
}

// SetFilter replaces the filter text and moves the filter cursor to cursor.
// Starting a filter remembers the list cursor; clearing it restores it.
func (l *Level) SetFilter(query string, cursor int) {
	was := strings.TrimSpace(l.Filter)
	now := strings.TrimSpace(query)
	l.Filter = query
	l.FilterCursor = clampInt(cursor, 0, len([]rune(query)))

	switch {
	case now != "" && was == "":
		l.LastCursor = l.Cursor
		l.Cursor = 0
	case now != "":
		l.Cursor = 0
	}
	l.applyFilter()

	switch {
	case now != "":
		if idx := BestMatchIndex(l.Items, now); idx >= 0 {
			l.Cursor = idx
		}
	case was != "":
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		} else if len(l.Items) > 0 {
			l.Cursor = len(l.Items) - 1
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	match := l.Matcher
	if match == nil {
		match = FilterItems
	}
	l.Items = match(l.Full, l.Filter)
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 || l.Cursor >= n {
		l.Cursor = n - 1
	}
	if l.ViewportOffset >= n {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the filter cursor as a rune offset into Filter.
func (l *Level) FilterCursorPos() int {
	return clampInt(l.FilterCursor, 0, len([]rune(l.Filter)))
}

// InsertFilterText inserts text at the filter cursor.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	next := make([]rune, 0, len(runes)+len(insert))
	next = append(next, runes[:pos]...)
	next = append(next, insert...)
	next = append(next, runes[pos:]...)
	l.SetFilter(string(next), pos+len(insert))
	return true
}

// EditFilter applies edit and reports whether the filter text changed.
func (l *Level) EditFilter(edit FilterEdit) bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if len(runes) == 0 {
		return false
	}
	from := pos
	switch edit {
	case EditClear:
		l.SetFilter("", 0)
		return true
	case EditRuneBackward:
		from = pos - 1
	case EditWordBackward:
		from = wordStart(runes, pos)
	}
	if from < 0 || from == pos {
		return false
	}
	next := append(append([]rune{}, runes[:from]...), runes[pos:]...)
	l.SetFilter(string(next), from)
	return true
}

// MoveFilterCursor applies move and reports whether the cursor moved.
func (l *Level) MoveFilterCursor(move FilterMove) bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	to := pos
	switch move {
	case FilterStart:
		to = 0
	case FilterEnd:
		to = len(runes)
	case FilterRuneBackward:
		to = max(pos-1, 0)
	case FilterRuneForward:
		to = min(pos+1, len(runes))
	case FilterWordBackward:
		to = wordStart(runes, pos)
	case FilterWordForward:
		to = wordEnd(runes, pos)
	}
	if to == pos {
		return false
	}
	l.FilterCursor = to
	return true
}

// wordStart skips back over spaces, then over the word before pos.
func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// wordEnd skips the word at pos and the spaces after it.
func wordEnd(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// FilterItems is the default Matcher. Labels are ranked fuzzily; when
// nothing ranks, a plain substring match on label or id is used. Matches
// keep their original order.
func FilterItems(items []menu.Item, query string) []menu.Item {
	needle := strings.TrimSpace(query)
	if needle == "" {
		return cloneItems(items)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	hit := make([]bool, len(items))
	ranked := false
	for _, rank := range fuzzy.RankFindNormalizedFold(needle, labels) {
		hit[rank.OriginalIndex] = true
		ranked = true
	}
	if !ranked {
		lower := strings.ToLower(needle)
		for i, item := range items {
			hit[i] = strings.Contains(strings.ToLower(item.Label), lower) ||
				strings.Contains(strings.ToLower(item.ID), lower)
		}
	}
	out := make([]menu.Item, 0, len(items))
	for i, item := range items {
		if hit[i] {
			out = append(out, item)
		}
	}
	return out
}

// matchText is the text an item is matched against: its channel name when
// it has one, its label otherwise.
func matchText(item menu.Item) string {
	if item.Name != "" {
		return item.Name
	}
	return item.Label
}

// BestMatchIndex picks the row the cursor should land on for query. An exact
// name or id wins, then a name prefix, then an id prefix, then the closest
// fuzzy match. It returns -1 only for an empty list.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return 0
	}
	tests := []func(menu.Item) bool{
		func(it menu.Item) bool {
			return strings.ToLower(matchText(it)) == needle || strings.ToLower(it.ID) == needle
		},
		func(it menu.Item) bool { return strings.HasPrefix(strings.ToLower(matchText(it)), needle) },
		func(it menu.Item) bool { return strings.HasPrefix(strings.ToLower(it.ID), needle) },
		func(it menu.Item) bool {
			return strings.Contains(strings.ToLower(matchText(it)), needle) ||
				strings.Contains(strings.ToLower(it.ID), needle)
		},
	}
	for _, test := range tests {
		for i, item := range items {
			if test(item) {
				return i
			}
		}
	}
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = matchText(item)
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(needle, texts) {
		if best < 0 || rank.Distance < bestDistance ||
			(rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best, bestDistance = rank.OriginalIndex, rank.Distance
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
