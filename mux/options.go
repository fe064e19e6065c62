// File: mux/options.go
// Functional options for PollContext construction.

package mux

import (
	"github.com/edaniels/golog"

	"github.com/embhal/sensormux/control"
)

// Option customizes PollContext construction.
type Option func(*PollContext)

// WithLogger sets the logger used for best-effort failure reporting
// (wake pipe writes, unknown wake bytes, driver read hiccups).
func WithLogger(logger golog.Logger) Option {
	return func(c *PollContext) {
		c.logger = logger
	}
}

// WithCounters attaches a counter registry incremented as the context
// delivers events, receives wake signals, and observes failures.
func WithCounters(counters *control.Counters) Option {
	return func(c *PollContext) {
		c.counters = counters
	}
}

// WithReturnCollectedOnError makes PollEvents return events already
// collected when the multiplexed wait fails mid-call, surfacing the
// failure on the next call instead. The default mirrors the historical
// behavior of discarding collected events and failing immediately.
func WithReturnCollectedOnError() Option {
	return func(c *PollContext) {
		c.returnCollected = true
	}
}
