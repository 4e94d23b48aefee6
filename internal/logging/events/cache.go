package events

import "github.com/atomicstack/tabfm/internal/logging"

type CacheTracer struct{}

var Cache = CacheTracer{}

func (CacheTracer) Hit(path string, refreshed bool) {
	logging.Trace("cache.hit", map[string]interface{}{"path": path, "refreshed": refreshed})
}

func (CacheTracer) Miss(path string) {
	logging.Trace("cache.miss", map[string]interface{}{"path": path})
}

func (CacheTracer) Insert(path string, replaced bool) {
	logging.Trace("cache.insert", map[string]interface{}{"path": path, "replaced": replaced})
}

func (CacheTracer) Populate(path string, created []string) {
	logging.Trace("cache.populate", map[string]interface{}{"path": path, "created": created})
}

func (CacheTracer) Depreciate(path string) {
	logging.Trace("cache.depreciate", map[string]interface{}{"path": path})
}

func (CacheTracer) DepreciateAll(count int) {
	logging.Trace("cache.depreciate-all", map[string]interface{}{"entries": count})
}
