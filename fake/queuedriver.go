// File: fake/queuedriver.go
// Queue-backed simulated driver with pipe readiness signaling.

package fake

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/embhal/sensormux/api"
	"github.com/embhal/sensormux/poller"
)

const readyByte = 0x01

// QueueDriver is a simulated driver fed through Push. Each queued event
// is mirrored by one byte on an internal pipe, so the driver's wait
// descriptor reports readability exactly while events are buffered.
// Events pushed for a disabled handle are dropped, and events queued
// before a disable are filtered out at read time, so a disabled handle
// never reaches the consumer.
type QueueDriver struct {
	mu      sync.Mutex
	pending *queue.Queue
	enabled map[api.Handle]bool
	delays  map[api.Handle]time.Duration
	closed  bool

	notify *poller.WakePipe
}

// NewQueueDriver creates an empty driver.
func NewQueueDriver() (*QueueDriver, error) {
	notify, err := poller.NewWakePipe()
	if err != nil {
		return nil, err
	}
	return &QueueDriver{
		pending: queue.New(),
		enabled: make(map[api.Handle]bool),
		delays:  make(map[api.Handle]time.Duration),
		notify:  notify,
	}, nil
}

// Push queues one event for delivery. Safe from any goroutine. Events for
// disabled handles are silently dropped.
func (d *QueueDriver) Push(ev api.Event) {
	d.mu.Lock()
	if d.closed || !d.enabled[ev.Sensor] {
		d.mu.Unlock()
		return
	}
	d.pending.Add(ev)
	d.mu.Unlock()
	_ = d.notify.Wake(readyByte)
}

// WaitFd returns the readiness descriptor.
func (d *QueueDriver) WaitFd() int { return d.notify.ReadFd() }

// Enable toggles delivery for one handle.
func (d *QueueDriver) Enable(h api.Handle, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return api.ErrClosed
	}
	d.enabled[h] = on
	return nil
}

// Enabled reports the current enable state of one handle.
func (d *QueueDriver) Enabled(h api.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled[h]
}

// SetDelay records the requested sampling interval for one handle.
func (d *QueueDriver) SetDelay(h api.Handle, delay time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return api.ErrClosed
	}
	d.delays[h] = delay
	return nil
}

// Delay returns the recorded interval for one handle, or fallback when
// none was set.
func (d *QueueDriver) Delay(h api.Handle, fallback time.Duration) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if delay, ok := d.delays[h]; ok {
		return delay
	}
	return fallback
}

// HasPendingEvents reports buffered events independent of descriptor
// readiness.
func (d *QueueDriver) HasPendingEvents() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending.Length() > 0
}

// ReadEvents pops up to len(out) buffered events, draining one readiness
// byte per popped entry. Entries whose handle was disabled after queueing
// are consumed and discarded.
func (d *QueueDriver) ReadEvents(out []api.Event) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for n < len(out) && d.pending.Length() > 0 {
		ev := d.pending.Remove().(api.Event)
		_, _ = d.notify.Drain()
		if !d.enabled[ev.Sensor] {
			continue
		}
		out[n] = ev
		n++
	}
	return n, nil
}

// Close discards buffered events and releases the pipe.
func (d *QueueDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.pending = queue.New()
	return d.notify.Close()
}
