package events

import "github.com/atomicstack/tabfm/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(force bool, pending int) {
	logging.Trace("app.exit", map[string]interface{}{"force": force, "pendingOperations": pending})
}
