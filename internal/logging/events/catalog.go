package events

import "github.com/atomicstack/tmux-stream-catalog/internal/logging"

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) Create(id, name, url string) {
	logging.Trace("catalog.create", map[string]interface{}{"id": id, "name": name, "url": url})
}

func (CatalogTracer) Invalid(name, url string) {
	logging.Trace("catalog.create.invalid", map[string]interface{}{"name": name, "url": url})
}

func (CatalogTracer) Remove(id string, removed bool) {
	logging.Trace("catalog.remove", map[string]interface{}{"id": id, "removed": removed})
}

func (CatalogTracer) Search(query string, matches int) {
	logging.Trace("catalog.search", map[string]interface{}{"query": query, "matches": matches})
}
