// File: control/counters.go
// Monotonic counter registry for system-level monitoring.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"
)

// Counter names maintained by the polling core.
const (
	EventsDelivered = "events_delivered"
	WakeSignals     = "wake_signals"
	PollFailures    = "poll_failures"
	Activations     = "activations"
)

// Counters holds named monotonic counters.
type Counters struct {
	mu      sync.RWMutex
	counts  map[string]int64
	updated time.Time
}

// NewCounters creates an empty registry.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]int64)}
}

// Add increments a counter, registering it on first use. Safe on a nil
// receiver so instrumentation can be left unconfigured.
func (c *Counters) Add(name string, delta int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.counts[name] += delta
	c.updated = time.Now()
	c.mu.Unlock()
}

// Get returns the current value of one counter.
func (c *Counters) Get(name string) int64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[name]
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int64 {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Updated returns the time of the last increment.
func (c *Counters) Updated() time.Time {
	if c == nil {
		return time.Time{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updated
}
