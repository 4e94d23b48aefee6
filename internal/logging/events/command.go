package events

import "github.com/atomicstack/tabfm/internal/logging"

type KeymapTracer struct{}

type CommandTracer struct{}

var (
	Keymap  = KeymapTracer{}
	Command = CommandTracer{}
)

func (KeymapTracer) Chord(keys []string, options int) {
	logging.Trace("keymap.chord", map[string]interface{}{"keys": keys, "options": options})
}

func (KeymapTracer) Abort(keys []string) {
	logging.Trace("keymap.abort", map[string]interface{}{"keys": keys})
}

func (KeymapTracer) Unknown(keys []string) {
	logging.Trace("keymap.unknown", map[string]interface{}{"keys": keys})
}

func (CommandTracer) Queue(name, label string) {
	logging.Trace("command.queue", map[string]interface{}{"name": name, "label": label})
}

func (CommandTracer) Result(name, label string, err error) {
	payload := map[string]interface{}{"name": name, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}

func (CommandTracer) Console(line string) {
	logging.Trace("command.console", map[string]interface{}{"line": line})
}
