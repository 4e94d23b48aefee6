package events

import "github.com/atomicstack/tabfm/internal/logging"

type OperationTracer struct{}

var Operation = OperationTracer{}

func (OperationTracer) Start(id, kind string, sources []string, dest string) {
	logging.Trace("operation.start", map[string]interface{}{
		"id":      id,
		"kind":    kind,
		"sources": sources,
		"dest":    dest,
	})
}

func (OperationTracer) Progress(id string, done, total uint64, item string) {
	logging.Trace("operation.progress", map[string]interface{}{
		"id":    id,
		"done":  done,
		"total": total,
		"item":  item,
	})
}

func (OperationTracer) Done(id string, reloaded []string) {
	logging.Trace("operation.done", map[string]interface{}{"id": id, "reloaded": reloaded})
}

func (OperationTracer) Failed(id string, err error) {
	payload := map[string]interface{}{"id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("operation.failed", payload)
}
