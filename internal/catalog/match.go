package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// ContainsFold reports whether name contains query under Unicode case
// folding. An empty query matches everything.
func ContainsFold(name, query string) bool {
	if query == "" {
		return true
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(name), folder.String(query))
}
