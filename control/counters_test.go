// File: control/counters_test.go

package control

import "testing"

func TestCounters(t *testing.T) {
	c := NewCounters()
	c.Add(EventsDelivered, 3)
	c.Add(EventsDelivered, 2)
	c.Add(WakeSignals, 1)

	if got := c.Get(EventsDelivered); got != 5 {
		t.Errorf("Get(events_delivered) = %d, want 5", got)
	}
	if got := c.Get(PollFailures); got != 0 {
		t.Errorf("Get(poll_failures) = %d, want 0", got)
	}

	snap := c.Snapshot()
	if len(snap) != 2 || snap[EventsDelivered] != 5 || snap[WakeSignals] != 1 {
		t.Errorf("Snapshot() = %v", snap)
	}
	if c.Updated().IsZero() {
		t.Error("Updated() is zero after increments")
	}
}

func TestCountersNilReceiver(t *testing.T) {
	var c *Counters
	c.Add(EventsDelivered, 1)
	if got := c.Get(EventsDelivered); got != 0 {
		t.Errorf("nil Get = %d, want 0", got)
	}
	if snap := c.Snapshot(); snap != nil {
		t.Errorf("nil Snapshot = %v, want nil", snap)
	}
}
