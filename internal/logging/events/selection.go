package events

import "github.com/atomicstack/tmux-stream-catalog/internal/logging"

type SelectionTracer struct{}

type selectionReason string

const (
	SelectionReasonDeselect selectionReason = "deselect"
	SelectionReasonRemoved  selectionReason = "removed"
)

var Selection = SelectionTracer{}

func (SelectionTracer) Select(id, url string) {
	logging.Trace("selection.select", map[string]interface{}{"id": id, "url": url})
}

func (SelectionTracer) NotFound(id string) {
	logging.Trace("selection.select.missing", map[string]interface{}{"id": id})
}

func (SelectionTracer) Clear(id string, reason selectionReason) {
	logging.Trace("selection.clear", map[string]interface{}{"id": id, "reason": string(reason)})
}
