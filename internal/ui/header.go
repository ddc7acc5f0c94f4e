package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-stream-catalog/internal/logging"
	"github.com/atomicstack/tmux-stream-catalog/internal/menu"
)

const (
	crumbSeparator   = "→"
	defaultRootTitle = "main menu"
)

var crumbCleaner = strings.NewReplacer("_", " ", "-", " ")

// crumb is the breadcrumb for a level: the last ":" part of its id, or its
// title, lowercased with underscores and dashes read as spaces.
func crumb(l *level) string {
	if l == nil {
		return ""
	}
	text := strings.TrimSpace(l.ID)
	if text == "" {
		text = l.Title
	}
	if i := strings.LastIndexByte(text, ':'); i >= 0 {
		text = text[i+1:]
	}
	return strings.Join(strings.Fields(strings.ToLower(crumbCleaner.Replace(text))), " ")
}

// menuHeader joins the breadcrumbs of the open levels. The main menu is named
// only while nothing is open on top of it, unless it was overridden.
func (m *Model) menuHeader() string {
	if len(m.stack) == 0 {
		return ""
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	var crumbs []string
	if len(m.stack) == 1 || m.rootMenuID != "" {
		crumbs = append(crumbs, root)
	}
	for _, l := range m.stack[1:] {
		if c := crumb(l); c != "" {
			crumbs = append(crumbs, c)
		}
	}
	if len(crumbs) == 0 {
		return root
	}
	return strings.Join(crumbs, crumbSeparator)
}

// applyRootMenuOverride starts the menu at the node named by requested. An
// unknown name keeps the main menu and reports it on the status line.
func (m *Model) applyRootMenuOverride(requested string) {
	m.rootMenuID, m.rootTitle = "", defaultRootTitle
	name := strings.TrimSpace(requested)
	if name == "" || m.registry == nil {
		return
	}
	node, ok := m.registry.Find(strings.ToLower(name))
	if !ok {
		m.errMsg = fmt.Sprintf("Unknown root menu %q", name)
		return
	}
	m.errMsg = ""
	var items []menu.Item
	if node.Loader != nil {
		loaded, err := node.Loader(m.menuContext())
		if err != nil {
			logging.Error(err)
			m.errMsg = fmt.Sprintf("Failed to load %s menu: %v", node.ID, err)
		}
		items = loaded
	}
	root := newLevel(node.ID, strings.TrimSpace(crumbCleaner.Replace(node.ID)), items, node)
	m.applyNodeSettings(root)
	m.syncViewport(root)
	m.stack = []*level{root}
	m.rootMenuID = node.ID
	if m.rootTitle = crumb(root); m.rootTitle == "" {
		m.rootTitle = node.ID
	}
}
