// File: api/errors.go
// Error kinds surfaced by the polling core.

package api

import (
	"errors"
	"fmt"
)

// Error kinds returned by the polling core. Hosts translate these into
// their own status codes; see the device package for the errno mapping.
var (
	// ErrInvalidHandle marks an activate/setDelay call whose handle is not
	// present in the handle-to-driver mapping.
	ErrInvalidHandle = errors.New("sensor handle not mapped to any driver")

	// ErrClosed marks operations on a context that has been shut down.
	ErrClosed = errors.New("poll context is closed")

	// ErrWakeChannel marks a wake pipe create/write/read failure. Writes
	// and reads are best effort and only logged; creation is fatal.
	ErrWakeChannel = errors.New("wake channel failure")
)

// PollFailure wraps the system error from the multiplexed wait. A poll
// call that returns it has terminated without retry.
type PollFailure struct {
	Cause error
}

func (e *PollFailure) Error() string {
	return fmt.Sprintf("multiplexed wait failed: %v", e.Cause)
}

// Unwrap exposes the underlying system error, typically a unix.Errno.
func (e *PollFailure) Unwrap() error { return e.Cause }
