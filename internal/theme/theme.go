// Package theme holds the Lip Gloss styles of the catalog UI.
package theme

import "github.com/charmbracelet/lipgloss"

// 256 colour palette indexes.
const (
	black  = "0"
	blue   = "33"
	green  = "34"
	red    = "196"
	muted  = "238"
	border = "240"
	faint  = "241"
	dim    = "245"
	text   = "249"
	body   = "250"
	bright = "255"
)

// Styles is the set of styles the UI draws with.
type Styles struct {
	Header *lipgloss.Style
	Footer *lipgloss.Style
	Info   *lipgloss.Style
	Error  *lipgloss.Style

	Loading *lipgloss.Style

	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItem          *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style

	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style

	DetailsTitle   *lipgloss.Style
	DetailsBody    *lipgloss.Style
	DetailsError   *lipgloss.Style
	DetailsBorder  *lipgloss.Style
	DetailsSummary *lipgloss.Style

	FormTitle *lipgloss.Style
}

var defaultStyles = newStyles()

// Default returns the shared style set.
func Default() *Styles {
	return &defaultStyles
}

func newStyles() Styles {
	fg := func(c string) *lipgloss.Style {
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		return &s
	}
	bold := func(c string) *lipgloss.Style {
		s := fg(c).Bold(true)
		return &s
	}
	onMuted := func(c string) *lipgloss.Style {
		s := fg(c).Background(lipgloss.Color(muted))
		return &s
	}
	selected := onMuted(bright).Bold(true)
	loading := fg(blue).Italic(true)
	cursor := fg(black).Background(lipgloss.Color(blue)).Blink(true)
	return Styles{
		Header:                bold(dim),
		Footer:                fg(text),
		Info:                  fg(text),
		Error:                 bold(red),
		Loading:               &loading,
		Item:                  fg(text),
		ItemIndicator:         fg(muted),
		SelectedItem:          &selected,
		SelectedItemIndicator: onMuted(blue),
		Filter:                fg(text),
		FilterPrompt:          bold(green),
		FilterPlaceholder:     fg(faint),
		Cursor:                &cursor,
		DetailsTitle:          bold(dim),
		DetailsBody:           fg(body),
		DetailsError:          bold(red),
		DetailsBorder:         fg(border),
		DetailsSummary:        fg(faint),
		FormTitle:             bold(bright),
	}
}
