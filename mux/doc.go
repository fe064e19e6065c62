// Package mux implements the polling core: a context that owns an ordered
// set of sensor drivers, multiplexes their wait descriptors together with a
// wake pipe in a single blocking wait, drains buffered events in slot
// priority order, and accepts enable/disable and rate changes from other
// goroutines without losing wakeups.
package mux
