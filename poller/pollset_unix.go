//go:build linux || darwin

// File: poller/pollset_unix.go
// Fixed-membership poll(2) wrapper for Linux and Darwin.

package poller

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Timeout values for PollSet.Wait.
const (
	// Block waits indefinitely until a descriptor becomes ready.
	Block = -1
	// NoWait returns immediately with whatever is ready.
	NoWait = 0
)

// PollSet is a fixed, ordered set of file descriptors multiplexed with a
// single poll(2) call. Membership is decided at construction and never
// changes; slot indexes are stable for the life of the set.
//
// Readiness flags written by Wait persist until the next Wait or an
// explicit ClearReady, mirroring how a drain loop consumes them across
// iterations.
type PollSet struct {
	fds []unix.PollFd
}

// NewPollSet builds a set watching every descriptor for readability, in
// the given order.
func NewPollSet(fds []int) *PollSet {
	ps := &PollSet{fds: make([]unix.PollFd, len(fds))}
	for i, fd := range fds {
		ps.fds[i] = unix.PollFd{Fd: int32(fd), Events: unix.POLLIN}
	}
	return ps
}

// Len returns the number of slots in the set.
func (ps *PollSet) Len() int { return len(ps.fds) }

// Wait issues one multiplexed wait with the given timeout in milliseconds
// (Block or NoWait for the common cases) and returns the number of ready
// descriptors. EINTR is retried; any other failure is returned as-is.
func (ps *PollSet) Wait(timeoutMs int) (int, error) {
	for {
		n, err := unix.Poll(ps.fds, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	}
}

// Ready reports whether slot i was marked readable by the last Wait.
func (ps *PollSet) Ready(i int) bool {
	return ps.fds[i].Revents&unix.POLLIN != 0
}

// ClearReady clears slot i's readiness flag.
func (ps *PollSet) ClearReady(i int) {
	ps.fds[i].Revents = 0
}

// WakePipe is a non-blocking pipe used to interrupt a blocked Wait from
// another goroutine. The write end is shared by any number of concurrent
// wakers; the read end must be drained only by the goroutine running the
// wait loop.
type WakePipe struct {
	r, w int
}

// NewWakePipe creates the pipe with both ends non-blocking and
// close-on-exec.
func NewWakePipe() (*WakePipe, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, errors.Wrap(err, "creating wake pipe")
	}
	for _, fd := range p {
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return nil, errors.Wrap(err, "configuring wake pipe")
		}
		unix.CloseOnExec(fd)
	}
	return &WakePipe{r: p[0], w: p[1]}, nil
}

// ReadFd returns the read end, for inclusion in a PollSet.
func (wp *WakePipe) ReadFd() int { return wp.r }

// Wake writes one signal byte to the pipe. Multiple wakes issued before
// the waiter drains are coalesced only in effect, not in byte count; the
// waiter drains one byte per observed readiness.
func (wp *WakePipe) Wake(b byte) error {
	_, err := unix.Write(wp.w, []byte{b})
	return errors.Wrap(err, "writing wake byte")
}

// Drain reads one byte from the pipe and returns it.
func (wp *WakePipe) Drain() (byte, error) {
	var buf [1]byte
	n, err := unix.Read(wp.r, buf[:])
	if err != nil {
		return 0, errors.Wrap(err, "reading wake byte")
	}
	if n == 0 {
		return 0, errors.New("wake pipe empty")
	}
	return buf[0], nil
}

// Close closes both ends of the pipe.
func (wp *WakePipe) Close() error {
	err := unix.Close(wp.r)
	if werr := unix.Close(wp.w); err == nil {
		err = werr
	}
	return err
}
