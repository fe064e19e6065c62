// File: fake/sampler.go
// Clock-driven simulated driver emitting synthetic readings.

package fake

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/embhal/sensormux/api"
)

// DefaultInterval is used when no SetDelay arrived before an enable.
const DefaultInterval = 10 * time.Millisecond

// SamplerDriver emits one synthetic event per sampling interval for every
// enabled handle. The interval is sampled when the handle is enabled; a
// SetDelay while running takes effect on the next enable. Built on a
// clock.Clock so tests can drive it with a mock.
type SamplerDriver struct {
	*QueueDriver

	clk   clock.Clock
	types map[api.Handle]api.SensorType

	mu    sync.Mutex
	stops map[api.Handle]chan struct{}
	wg    sync.WaitGroup
}

// NewSamplerDriver creates a sampler serving the given handles, each
// tagged with its sensor family in emitted events.
func NewSamplerDriver(clk clock.Clock, types map[api.Handle]api.SensorType) (*SamplerDriver, error) {
	qd, err := NewQueueDriver()
	if err != nil {
		return nil, err
	}
	typesCopy := make(map[api.Handle]api.SensorType, len(types))
	for h, t := range types {
		typesCopy[h] = t
	}
	return &SamplerDriver{
		QueueDriver: qd,
		clk:         clk,
		types:       typesCopy,
		stops:       make(map[api.Handle]chan struct{}),
	}, nil
}

// Enable starts or stops the sampling loop for one handle.
func (d *SamplerDriver) Enable(h api.Handle, on bool) error {
	if err := d.QueueDriver.Enable(h, on); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	stop, running := d.stops[h]
	switch {
	case on && !running:
		stop = make(chan struct{})
		d.stops[h] = stop
		d.wg.Add(1)
		go d.sample(h, stop)
	case !on && running:
		close(stop)
		delete(d.stops, h)
	}
	return nil
}

func (d *SamplerDriver) sample(h api.Handle, stop chan struct{}) {
	defer d.wg.Done()

	ticker := d.clk.Ticker(d.Delay(h, DefaultInterval))
	defer ticker.Stop()

	var seq float32
	for {
		select {
		case now := <-ticker.C:
			seq++
			d.Push(api.Event{
				Sensor:    h,
				Type:      d.types[h],
				Timestamp: now.UnixNano(),
				Data:      [4]float32{seq},
			})
		case <-stop:
			return
		}
	}
}

// Close stops all sampling loops before releasing the underlying driver.
func (d *SamplerDriver) Close() error {
	d.mu.Lock()
	for h, stop := range d.stops {
		close(stop)
		delete(d.stops, h)
	}
	d.mu.Unlock()
	d.wg.Wait()
	return d.QueueDriver.Close()
}
