package events

import "github.com/atomicstack/tabfm/internal/logging"

type TabTracer struct{}

type WatchTracer struct{}

var (
	Tab   = TabTracer{}
	Watch = WatchTracer{}
)

func (TabTracer) Open(id, path string, index int) {
	logging.Trace("tab.open", map[string]interface{}{"id": id, "path": path, "index": index})
}

func (TabTracer) Close(id string, index int) {
	logging.Trace("tab.close", map[string]interface{}{"id": id, "index": index})
}

func (TabTracer) Switch(from, to int, path string) {
	logging.Trace("tab.switch", map[string]interface{}{"from": from, "to": to, "path": path})
}

func (TabTracer) ChangeDirectory(id, from, to string) {
	logging.Trace("tab.cd", map[string]interface{}{"id": id, "from": from, "to": to})
}

func (WatchTracer) Change(dir string) {
	logging.Trace("watch.change", map[string]interface{}{"dir": dir})
}

func (WatchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"error": err.Error()})
}
