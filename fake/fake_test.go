// File: fake/fake_test.go

package fake

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/embhal/sensormux/api"
)

func TestQueueDriverEnableMask(t *testing.T) {
	d, err := NewQueueDriver()
	if err != nil {
		t.Fatalf("NewQueueDriver() error: %v", err)
	}
	defer d.Close()

	// Disabled pushes are dropped outright.
	d.Push(api.Event{Sensor: api.HandleLight})
	if d.HasPendingEvents() {
		t.Fatal("disabled push was buffered")
	}

	if err := d.Enable(api.HandleLight, true); err != nil {
		t.Fatalf("Enable error: %v", err)
	}
	d.Push(api.Event{Sensor: api.HandleLight, Data: [4]float32{1}})
	d.Push(api.Event{Sensor: api.HandleLight, Data: [4]float32{2}})
	if !d.HasPendingEvents() {
		t.Fatal("enabled pushes were not buffered")
	}

	// Events queued before a disable are filtered at read time.
	if err := d.Enable(api.HandleLight, false); err != nil {
		t.Fatalf("Enable error: %v", err)
	}
	buf := make([]api.Event, 4)
	n, err := d.ReadEvents(buf)
	if err != nil {
		t.Fatalf("ReadEvents error: %v", err)
	}
	if n != 0 {
		t.Errorf("ReadEvents = %d events after disable, want 0", n)
	}
	if d.HasPendingEvents() {
		t.Error("events still pending after filtered read")
	}
}

func TestQueueDriverReadHonorsCapacity(t *testing.T) {
	d, err := NewQueueDriver()
	if err != nil {
		t.Fatalf("NewQueueDriver() error: %v", err)
	}
	defer d.Close()

	if err := d.Enable(api.HandleProximity, true); err != nil {
		t.Fatalf("Enable error: %v", err)
	}
	for i := 0; i < 5; i++ {
		d.Push(api.Event{Sensor: api.HandleProximity, Data: [4]float32{float32(i)}})
	}

	buf := make([]api.Event, 3)
	n, err := d.ReadEvents(buf)
	if err != nil {
		t.Fatalf("ReadEvents error: %v", err)
	}
	if n != 3 {
		t.Fatalf("ReadEvents = %d, want 3", n)
	}
	if !d.HasPendingEvents() {
		t.Fatal("remaining events lost")
	}
	n, err = d.ReadEvents(buf)
	if err != nil {
		t.Fatalf("ReadEvents error: %v", err)
	}
	if n != 2 {
		t.Fatalf("second ReadEvents = %d, want 2", n)
	}
}

func TestQueueDriverDelays(t *testing.T) {
	d, err := NewQueueDriver()
	if err != nil {
		t.Fatalf("NewQueueDriver() error: %v", err)
	}
	defer d.Close()

	if got := d.Delay(api.HandleLight, time.Second); got != time.Second {
		t.Errorf("Delay fallback = %v, want 1s", got)
	}
	if err := d.SetDelay(api.HandleLight, 20*time.Millisecond); err != nil {
		t.Fatalf("SetDelay error: %v", err)
	}
	if got := d.Delay(api.HandleLight, time.Second); got != 20*time.Millisecond {
		t.Errorf("Delay = %v, want 20ms", got)
	}
}

func TestSamplerEmitsAtInterval(t *testing.T) {
	clk := clock.NewMock()
	d, err := NewSamplerDriver(clk, map[api.Handle]api.SensorType{
		api.HandleAccelerometer: api.TypeAccelerometer,
	})
	if err != nil {
		t.Fatalf("NewSamplerDriver() error: %v", err)
	}
	defer d.Close()

	if err := d.SetDelay(api.HandleAccelerometer, time.Second); err != nil {
		t.Fatalf("SetDelay error: %v", err)
	}
	if err := d.Enable(api.HandleAccelerometer, true); err != nil {
		t.Fatalf("Enable error: %v", err)
	}

	// The sampling goroutine registers its ticker asynchronously; advance
	// the mock clock until events show up.
	deadline := time.Now().Add(2 * time.Second)
	for !d.HasPendingEvents() {
		if time.Now().After(deadline) {
			t.Fatal("no events sampled before deadline")
		}
		clk.Add(time.Second)
		time.Sleep(time.Millisecond)
	}

	buf := make([]api.Event, 8)
	n, err := d.ReadEvents(buf)
	if err != nil {
		t.Fatalf("ReadEvents error: %v", err)
	}
	if n == 0 {
		t.Fatal("ReadEvents = 0 with pending events")
	}
	for i := 0; i < n; i++ {
		if buf[i].Sensor != api.HandleAccelerometer || buf[i].Type != api.TypeAccelerometer {
			t.Errorf("event %d = %+v, want accelerometer", i, buf[i])
		}
	}

	if err := d.Enable(api.HandleAccelerometer, false); err != nil {
		t.Fatalf("disable error: %v", err)
	}
}
