// File: api/driver.go
// The driver capability contract implemented by every physical sensor driver.

package api

import "time"

// SensorDriver is the capability set each sensor driver exposes to the
// polling core. Implementations own their data source and wait handle.
//
// A single driver may serve several handles; Enable and SetDelay receive
// the original handle so the driver knows which logical sensor toggled.
//
// Drivers must tolerate Enable/SetDelay calls from a control goroutine
// racing with an in-progress ReadEvents on the consumer goroutine; the
// polling core does not serialize the two.
type SensorDriver interface {
	// WaitFd returns the readiness file descriptor for this driver. The
	// descriptor must remain valid until Close and becomes readable when
	// the driver has events to deliver.
	WaitFd() int

	// Enable turns delivery for one handle on or off.
	Enable(h Handle, on bool) error

	// SetDelay requests a minimum sampling interval for one handle.
	SetDelay(h Handle, d time.Duration) error

	// HasPendingEvents reports buffered events that are readable without
	// the wait descriptor being marked ready.
	HasPendingEvents() bool

	// ReadEvents fills out with up to len(out) events and returns the
	// count. It never blocks beyond what is immediately available and
	// never writes past len(out).
	ReadEvents(out []Event) (int, error)

	// Close releases the driver and its wait descriptor.
	Close() error
}
