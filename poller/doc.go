// Package poller provides the readiness-multiplexing primitives used by the
// polling core: a fixed ordered set of file descriptors waited on with a
// single poll(2) call, and the non-blocking wake pipe used to interrupt a
// blocked wait from another goroutine.
package poller
