// Package table lays out plain text rows as aligned columns for the channel
// list and the details panel.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const gap = "  "

// Format pads each cell to the widest cell of its column and joins the cells
// with two spaces. Widths are terminal cells, so wide runes line up. A left
// aligned last cell is left unpadded to avoid trailing blanks.
func Format(rows [][]string, align []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	lines := make([]string, len(rows))
	cells := make([]string, 0, len(widths))
	for i, row := range rows {
		cells = cells[:0]
		for c, cell := range row {
			right := c < len(align) && align[c] == AlignRight
			switch {
			case right:
				cell = runewidth.FillLeft(cell, widths[c])
			case c < len(row)-1:
				cell = runewidth.FillRight(cell, widths[c])
			}
			cells = append(cells, cell)
		}
		lines[i] = strings.Join(cells, gap)
	}
	return lines
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c == len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}
	return widths
}
