package state

type CursorMove int

const (
	MoveUp CursorMove = iota
	MoveDown
	MovePageUp
	MovePageDown
	MoveHome
	MoveEnd
)

// MoveCursor applies move and reports whether the cursor changed. Up and down
// wrap around; paging stops at either end. page is the number of visible
// rows, or the whole list when it is not positive.
func (l *Level) MoveCursor(move CursorMove, page int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	if page <= 0 || page > n {
		page = n
	}
	was := l.Cursor
	at := clampInt(l.Cursor, 0, n-1)
	switch move {
	case MoveUp:
		at = (at + n - 1) % n
	case MoveDown:
		at = (at + 1) % n
	case MovePageUp:
		at = max(0, at-page)
	case MovePageDown:
		at = min(n-1, at+page)
	case MoveHome:
		at = 0
	case MoveEnd:
		at = n - 1
	}
	l.Cursor = at
	return at != was
}

// EnsureCursorVisible clamps the cursor to the items and scrolls the
// viewport the least needed to show it. page <= 0 means everything fits.
func (l *Level) EnsureCursorVisible(page int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = clampInt(l.Cursor, 0, n-1)
	if page <= 0 {
		l.ViewportOffset = 0
		return
	}
	top := clampInt(l.ViewportOffset, 0, max(n-page, 0))
	switch {
	case l.Cursor < top:
		top = l.Cursor
	case l.Cursor >= top+page:
		top = l.Cursor - page + 1
	}
	l.ViewportOffset = top
}
