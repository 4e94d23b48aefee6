package backend

import (
	"sort"
	"sync"
	"time"
)

// coalescer gathers changed directories and releases them at most once per
// interval, so a burst of writes into one directory becomes a single event.
type coalescer struct {
	interval time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	next    time.Time
}

func newCoalescer(interval time.Duration) *coalescer {
	if interval < 0 {
		interval = 0
	}
	return &coalescer{interval: interval, pending: make(map[string]struct{})}
}

func (c *coalescer) add(dir string) {
	c.mu.Lock()
	c.pending[dir] = struct{}{}
	c.mu.Unlock()
}

// due returns the pending directories, sorted, once the interval since the
// last release has passed. Otherwise it returns nil and keeps them queued.
func (c *coalescer) due(now time.Time) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 || now.Before(c.next) {
		return nil
	}
	dirs := make([]string, 0, len(c.pending))
	for dir := range c.pending {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	clear(c.pending)
	c.next = now.Add(c.interval)
	return dirs
}
