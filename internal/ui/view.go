package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	detailsPanelMinWidth = 40 // below this the details stay inline
	detailsPanelFraction = 0.5
	bottomBarRows        = 2 // status line and filter prompt
)

const footerHint = "↑/↓ move  enter play  tab mark  del remove  ctrl+s stop  esc back"

// row is one line of output. When bar is set the first rune, the cursor bar
// of a menu item, is drawn with it and the rest with style.
type row struct {
	text  string
	style *lipgloss.Style
	bar   *lipgloss.Style
}

func (r row) render() string {
	if r.bar != nil {
		if _, n := utf8.DecodeRuneInString(r.text); n > 0 && n < len(r.text) {
			return paint(r.bar, r.text[:n]) + paint(r.style, r.text[n:])
		}
	}
	return paint(r.style, r.text)
}

// hasSidePanel reports whether channel details go in a panel beside the
// menu instead of below it.
func (m *Model) hasSidePanel() bool {
	return m.hasDetails() && m.detailsPanelWidth() > 0
}

// detailsPanelWidth is the panel's share of the terminal, or 0 when the
// terminal is too narrow to split.
func (m *Model) detailsPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	if w := int(float64(m.width) * detailsPanelFraction); w >= detailsPanelMinWidth {
		return w
	}
	return 0
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.detailsPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	if m.mode == ModeChannelForm && m.channelForm != nil {
		return m.viewChannelFormWithHeader(header)
	}
	var body string
	if m.hasSidePanel() {
		body = m.splitBody(header)
	} else {
		body = m.stackedBody(header)
	}
	return body + "\n" + m.bottomBar()
}

// menuRows is the header, the visible items and the trailer. inline adds the
// channel details between the items and the trailer.
func (m *Model) menuRows(header string, width int, inline bool) []row {
	var rows []row
	if header != "" {
		rows = append(rows, row{text: header, style: styles.Header})
	}
	rows = append(rows, m.itemRows(width)...)
	if inline {
		rows = append(rows, inlineDetails(m.channelDetails())...)
	}
	return append(rows, m.trailerRows()...)
}

func (m *Model) stackedBody(header string) string {
	rows := m.menuRows(header, m.width, true)
	rows = clip(rows, m.height-bottomBarRows, m.width)
	return join(fit(rows, m.width))
}

// splitBody draws the menu column padded to its width with the details
// panel on its right.
func (m *Model) splitBody(header string) string {
	menuW, panelW := m.menuColumnWidth(), m.detailsPanelWidth()
	height := max(m.height-bottomBarRows, 3)
	rows := m.menuRows(header, menuW, false)
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, row{})
	}
	left := strings.Split(join(fit(rows, menuW)), "\n")
	for i, line := range left {
		left[i] = padCells(line, menuW)
	}
	panel := m.renderDetailsPanel(m.channelDetails(), panelW, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(left, "\n"), panel)
}

func inlineDetails(d *channelDetails) []row {
	if d == nil {
		return nil
	}
	rows := []row{{}, {text: d.title, style: styles.DetailsTitle}}
	for _, line := range d.lines {
		rows = append(rows, row{text: line, style: styles.DetailsBody})
	}
	if d.errLine != "" {
		rows = append(rows, row{text: d.errLine, style: styles.DetailsError})
	}
	if d.summary != "" {
		rows = append(rows, row{text: d.summary, style: styles.Info})
	}
	return rows
}

// itemRows renders the part of the current level that fits on screen.
func (m *Model) itemRows(width int) []row {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	m.syncViewport(current)
	if len(current.Items) == 0 {
		if current.Filter != "" {
			return []row{{text: fmt.Sprintf("No matches for %q", current.Filter), style: styles.Info}}
		}
		return []row{{text: "(no entries)", style: styles.Info}}
	}
	start, end := m.visibleRange(current)
	rows := make([]row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, itemRow(current, i, width))
	}
	return rows
}

// visibleRange clamps the level's viewport so a full page is shown.
func (m *Model) visibleRange(l *level) (int, int) {
	n := len(l.Items)
	limit := m.maxVisibleItems()
	if limit <= 0 || n <= limit {
		return 0, n
	}
	l.ViewportOffset = min(max(l.ViewportOffset, 0), n-limit)
	return l.ViewportOffset, l.ViewportOffset + limit
}

// itemRow is the menu row for l.Items[idx], padded to width so the cursor
// highlight spans the column.
func itemRow(l *level, idx, width int) row {
	item := l.Items[idx]
	text := "▌ " + item.Label
	if l.MultiSelect {
		mark := " "
		if l.IsMarked(item.ID) {
			mark = "✓"
		}
		text = "▌ [" + mark + "] " + item.Label
	}
	r := row{text: text, style: styles.Item, bar: styles.ItemIndicator}
	if idx == l.Cursor {
		r.style, r.bar = styles.SelectedItem, styles.SelectedItemIndicator
	}
	if width > 0 {
		r.text = padCells(r.text, max(width, lipgloss.Width(r.text)))
	}
	return r
}

// trailerRows holds the notice, or the pending action, and the footer.
func (m *Model) trailerRows() []row {
	var rows []row
	switch info := m.currentInfo(); {
	case info != "":
		rows = append(rows, row{}, row{text: info, style: styles.Info})
	case m.loading && m.pendingLabel != "":
		rows = append(rows, row{}, row{text: m.pendingLabel + "…", style: styles.Loading})
	}
	if m.showFooter {
		rows = append(rows, row{}, row{text: footerHint, style: styles.Footer})
	}
	return rows
}

func (m *Model) bottomBar() string {
	var status row
	if m.errMsg != "" {
		status = row{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	prompt, _ := m.filterPrompt()
	return join(fit([]row{status, {text: prompt}}, m.width))
}

// renderDetailsPanel draws the bordered channel box, exactly width columns
// by height rows. The channel count sits in the top border.
func (m *Model) renderDetailsPanel(d *channelDetails, width, height int) string {
	inner := max(width-2, 1)
	title, summary := " Channel ", ""
	var body []row
	if d != nil {
		if d.title != "" {
			title = " Channel: " + d.title + " "
		}
		if d.summary != "" {
			summary = " " + d.summary + " "
		}
		for _, line := range d.lines {
			body = append(body, row{text: line, style: styles.DetailsBody})
		}
		if d.errLine != "" {
			body = append(body, row{}, row{text: d.errLine, style: styles.DetailsError})
		}
	}
	side := styles.DetailsBorder.Render("│")
	lines := []string{panelTop(title, summary, width)}
	for i := 0; i < max(height-2, 1); i++ {
		var r row
		if i < len(body) {
			r = body[i]
		}
		r.text = padCells(r.text, inner)
		lines = append(lines, side+r.render()+side)
	}
	lines = append(lines, styles.DetailsBorder.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(lines, "\n")
}

// panelTop is the top border: the title on the left, the summary on the
// right. The summary goes first when space runs out, then the title.
func panelTop(title, summary string, width int) string {
	fill := func() int {
		return width - 4 - lipgloss.Width(title) - lipgloss.Width(summary)
	}
	if fill() < 0 {
		summary = ""
	}
	if fill() < 0 {
		title = " … "
	}
	return styles.DetailsBorder.Render("╭─") +
		styles.DetailsTitle.Render(title) +
		styles.DetailsBorder.Render(strings.Repeat("─", max(fill(), 0))) +
		styles.DetailsSummary.Render(summary) +
		styles.DetailsBorder.Render("─╮")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

// maxVisibleItems is how many item rows fit once everything else is laid
// out, at least 1. It is -1 when the height is unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows + len(m.trailerRows())
	if m.menuHeader() != "" {
		used++
	}
	if !m.hasSidePanel() {
		used += detailsLineCount(m.channelDetails())
	}
	return max(m.height-used, 1)
}

// clip keeps rows within height, replacing the last kept row with an
// ellipsis when some are dropped.
func clip(rows []row, height, width int) []row {
	if height <= 0 || len(rows) <= height {
		return rows
	}
	clipped := append([]row(nil), rows[:height-1]...)
	return append(clipped, row{text: truncateText("…", width)})
}

func fit(rows []row, width int) []row {
	if width <= 0 {
		return rows
	}
	out := make([]row, len(rows))
	for i, r := range rows {
		r.text = truncateText(r.text, width)
		out[i] = r
	}
	return out
}

func join(rows []row) string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.render()
	}
	return strings.Join(out, "\n")
}

// padCells truncates or pads s to exactly width cells.
func padCells(s string, width int) string {
	if lipgloss.Width(s) > width {
		s = truncate.StringWithTail(s, uint(max(width-1, 0)), "…")
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// truncateText cuts text to width terminal cells, ending in an ellipsis.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return string([]rune(text)[:1])
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
