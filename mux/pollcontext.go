// File: mux/pollcontext.go
// The poll context: driver ownership, handle resolution, control-plane
// wakeups, and the drain/wait event loop.

package mux

import (
	"sync/atomic"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/embhal/sensormux/api"
	"github.com/embhal/sensormux/control"
	"github.com/embhal/sensormux/poller"
)

// Wake pipe signal bytes. One byte is written per control operation;
// content beyond the byte value carries no data.
const (
	wakeByte     = 'W'
	shutdownByte = 'S'
)

// DriverConfig binds one driver instance to the handles it serves.
// Slot priority is the order of the DriverConfig slice passed to New:
// earlier slots are drained first on every pass.
type DriverConfig struct {
	Driver  api.SensorDriver
	Handles []api.Handle
}

// pollWaiter is the surface of poller.PollSet the context depends on.
type pollWaiter interface {
	Wait(timeoutMs int) (int, error)
	Ready(i int) bool
	ClearReady(i int)
}

// PollContext owns all configured drivers and the wake pipe. One consumer
// goroutine calls PollEvents in a loop; any number of control goroutines
// may call Activate and SetDelay, serialized per handle by the host.
//
// Close must not run concurrently with an in-flight PollEvents; call
// Shutdown first to unblock the consumer.
type PollContext struct {
	drivers []api.SensorDriver
	slots   map[api.Handle]int

	set     pollWaiter
	wake    *poller.WakePipe
	wakeIdx int

	logger   golog.Logger
	counters *control.Counters

	returnCollected bool
	deferredErr     error // surfaced on the next PollEvents call

	closed atomic.Bool
}

// New builds a PollContext from an ordered driver configuration. The
// handle-to-slot mapping is built once here; it is injective per handle
// but several handles may share one slot. Wake pipe creation failure is
// fatal: without it a blocked PollEvents could never observe an enable.
func New(cfgs []DriverConfig, opts ...Option) (*PollContext, error) {
	if len(cfgs) == 0 {
		return nil, errors.New("no drivers configured")
	}

	c := &PollContext{
		drivers: make([]api.SensorDriver, 0, len(cfgs)),
		slots:   make(map[api.Handle]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = golog.NewDevelopmentLogger("sensormux")
	}

	fds := make([]int, 0, len(cfgs)+1)
	for slot, cfg := range cfgs {
		if cfg.Driver == nil {
			return nil, errors.Errorf("slot %d: nil driver", slot)
		}
		if len(cfg.Handles) == 0 {
			return nil, errors.Errorf("slot %d: no handles", slot)
		}
		for _, h := range cfg.Handles {
			if prev, dup := c.slots[h]; dup {
				return nil, errors.Errorf("handle %v mapped to slots %d and %d", h, prev, slot)
			}
			c.slots[h] = slot
		}
		c.drivers = append(c.drivers, cfg.Driver)
		fds = append(fds, cfg.Driver.WaitFd())
	}

	wake, err := poller.NewWakePipe()
	if err != nil {
		return nil, errors.Wrap(api.ErrWakeChannel, err.Error())
	}
	c.wake = wake
	c.wakeIdx = len(fds)
	fds = append(fds, wake.ReadFd())
	c.set = poller.NewPollSet(fds)

	return c, nil
}

// Mapped reports whether a handle resolves to a configured driver slot.
func (c *PollContext) Mapped(h api.Handle) bool {
	_, ok := c.slots[h]
	return ok
}

func (c *PollContext) resolve(h api.Handle) (int, error) {
	slot, ok := c.slots[h]
	if !ok {
		return 0, errors.Wrapf(api.ErrInvalidHandle, "handle %d", h)
	}
	return slot, nil
}

// Activate enables or disables delivery for one handle. On a successful
// enable it writes one wake byte so a blocked PollEvents re-evaluates the
// now-active driver; without it the driver's first event could wait
// behind a wait issued before the enable. Wake write failures are logged,
// not escalated: the next natural event or a retried Activate still wakes
// the waiter.
func (c *PollContext) Activate(h api.Handle, enabled bool) error {
	if c.closed.Load() {
		return api.ErrClosed
	}
	slot, err := c.resolve(h)
	if err != nil {
		return err
	}
	if err := c.drivers[slot].Enable(h, enabled); err != nil {
		return err
	}
	c.counters.Add(control.Activations, 1)
	if enabled {
		if err := c.wake.Wake(wakeByte); err != nil {
			c.logger.Errorw("error sending wake message", "handle", h, "error", err)
		} else {
			c.counters.Add(control.WakeSignals, 1)
		}
	}
	return nil
}

// SetDelay forwards the requested minimum sampling interval to the
// driver serving the handle. No wake is needed: a rate change on an
// already-active driver does not require unblocking the waiter.
func (c *PollContext) SetDelay(h api.Handle, d time.Duration) error {
	if c.closed.Load() {
		return api.ErrClosed
	}
	slot, err := c.resolve(h)
	if err != nil {
		return err
	}
	return c.drivers[slot].SetDelay(h, d)
}

// PollEvents fills out with available events and returns the count. With
// a non-empty buffer it blocks until at least one event is available, the
// wait fails, or the context is shut down. An empty buffer returns zero
// immediately.
//
// Each pass drains drivers in slot order while room remains, then issues
// one multiplexed wait: non-blocking if events were already collected
// this call (opportunistic top-up), indefinite otherwise. A driver that
// returns fewer events than requested is considered drained for the pass;
// one that fills the remaining room keeps its readiness so the next pass
// re-checks it.
//
// By default a wait failure terminates the call immediately, discarding
// events collected this call; WithReturnCollectedOnError selects the
// variant that returns them and surfaces the failure on the next call.
func (c *PollContext) PollEvents(out []api.Event) (int, error) {
	if len(out) == 0 {
		return 0, nil
	}
	if err := c.deferredErr; err != nil {
		c.deferredErr = nil
		return 0, err
	}
	if c.closed.Load() {
		return 0, api.ErrClosed
	}

	nbEvents := 0
	count := len(out)
	n := 0

	for {
		// Drain pass: consume leftovers from the previous wait before
		// blocking again.
		for i := 0; i < len(c.drivers) && count > 0; i++ {
			driver := c.drivers[i]
			if !c.set.Ready(i) && !driver.HasPendingEvents() {
				continue
			}
			nb, err := driver.ReadEvents(out[nbEvents : nbEvents+count])
			if err != nil {
				c.logger.Errorw("driver read failed", "slot", i, "error", err)
				c.set.ClearReady(i)
				continue
			}
			if nb < count {
				// No more data for this driver; a full read leaves the
				// flag set so the next pass re-checks it.
				c.set.ClearReady(i)
			}
			count -= nb
			nbEvents += nb
		}

		if count > 0 {
			// Room remains: grab more events immediately if we already
			// have some to return, otherwise wait for anything to arrive.
			timeout := poller.Block
			if nbEvents > 0 {
				timeout = poller.NoWait
			}
			var err error
			n, err = c.set.Wait(timeout)
			if err != nil {
				c.counters.Add(control.PollFailures, 1)
				failure := &api.PollFailure{Cause: err}
				if c.returnCollected && nbEvents > 0 {
					c.deferredErr = failure
					return nbEvents, nil
				}
				return 0, failure
			}
			if c.set.Ready(c.wakeIdx) {
				stop := c.drainWake()
				c.set.ClearReady(c.wakeIdx)
				if stop {
					if nbEvents > 0 {
						c.counters.Add(control.EventsDelivered, int64(nbEvents))
						return nbEvents, nil
					}
					return 0, api.ErrClosed
				}
			}
		}

		if n == 0 || count == 0 {
			break
		}
	}

	c.counters.Add(control.EventsDelivered, int64(nbEvents))
	return nbEvents, nil
}

// drainWake consumes one wake byte and reports whether it was a shutdown
// signal. Read failures and unexpected bytes are logged, not fatal.
func (c *PollContext) drainWake() bool {
	b, err := c.wake.Drain()
	switch {
	case err != nil:
		c.logger.Errorw("error reading from wake pipe", "error", err)
	case b == shutdownByte:
		return true
	case b != wakeByte:
		c.logger.Errorw("unknown message on wake pipe", "byte", b)
	}
	return false
}

// Shutdown marks the context closed and signals a blocked PollEvents
// through the wake pipe so the consumer loop can exit promptly. Safe to
// call from any goroutine and idempotent.
func (c *PollContext) Shutdown() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	if err := c.wake.Wake(shutdownByte); err != nil {
		c.logger.Errorw("error sending shutdown message", "error", err)
	}
}

// Close destroys every driver, then closes the wake pipe. Drivers go
// first: their teardown can be slow, and the pipe is cheap to close last.
// The caller must ensure no PollEvents call is in flight; Shutdown
// unblocks one.
func (c *PollContext) Close() error {
	c.closed.Store(true)
	var err error
	for _, d := range c.drivers {
		err = multierr.Combine(err, d.Close())
	}
	return multierr.Combine(err, c.wake.Close())
}
