// File: device/device_test.go

package device_test

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"golang.org/x/sys/unix"

	"github.com/embhal/sensormux/api"
	"github.com/embhal/sensormux/catalog"
	"github.com/embhal/sensormux/device"
	"github.com/embhal/sensormux/fake"
	"github.com/embhal/sensormux/mux"
)

func newLightConfig(t *testing.T) (device.Config, *fake.QueueDriver) {
	t.Helper()
	light, err := fake.NewQueueDriver()
	if err != nil {
		t.Fatalf("NewQueueDriver() error: %v", err)
	}
	cfg := device.Config{
		Drivers: []mux.DriverConfig{
			{Driver: light, Handles: []api.Handle{api.HandleLight}},
		},
		Sensors: []catalog.Descriptor{
			{Name: "test light", Handle: api.HandleLight, Type: api.TypeLight},
		},
	}
	return cfg, light
}

func TestOpenRejectsUnmappedCatalogEntry(t *testing.T) {
	cfg, _ := newLightConfig(t)
	cfg.Sensors = append(cfg.Sensors, catalog.Descriptor{
		Name: "phantom gyro", Handle: api.HandleGyroscope, Type: api.TypeGyroscope,
	})
	if _, err := device.Open(cfg, mux.WithLogger(golog.NewTestLogger(t))); err == nil {
		t.Fatal("Open succeeded with a catalog entry no driver serves")
	}
}

func TestDeviceVtable(t *testing.T) {
	cfg, light := newLightConfig(t)
	dev, err := device.Open(cfg, mux.WithLogger(golog.NewTestLogger(t)))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	if got := len(dev.Sensors()); got != 1 {
		t.Errorf("Sensors() = %d entries, want 1", got)
	}

	if code := dev.Activate(999, true); code != -int(unix.EINVAL) {
		t.Errorf("Activate(999) = %d, want -EINVAL", code)
	}
	if code := dev.SetDelay(999, int64(time.Millisecond)); code != -int(unix.EINVAL) {
		t.Errorf("SetDelay(999) = %d, want -EINVAL", code)
	}

	if code := dev.Activate(int(api.HandleLight), true); code != 0 {
		t.Fatalf("Activate(light) = %d", code)
	}
	if code := dev.SetDelay(int(api.HandleLight), int64(20*time.Millisecond)); code != 0 {
		t.Fatalf("SetDelay(light) = %d", code)
	}

	light.Push(api.Event{Sensor: api.HandleLight, Type: api.TypeLight, Data: [4]float32{120}})
	buf := make([]api.Event, 4)
	if n := dev.Poll(buf); n != 1 {
		t.Fatalf("Poll = %d, want 1", n)
	}
	if buf[0].Data[0] != 120 {
		t.Errorf("payload = %v, want pass-through 120", buf[0].Data[0])
	}

	if code := dev.Close(); code != 0 {
		t.Errorf("Close = %d", code)
	}
	if code := dev.Poll(buf); code != -int(unix.ENODEV) {
		t.Errorf("Poll after close = %d, want -ENODEV", code)
	}
}

func TestDeviceWithSampler(t *testing.T) {
	sampler, err := fake.NewSamplerDriver(clock.New(), map[api.Handle]api.SensorType{
		api.HandleGyroscope: api.TypeGyroscope,
	})
	if err != nil {
		t.Fatalf("NewSamplerDriver() error: %v", err)
	}
	dev, err := device.Open(device.Config{
		Drivers: []mux.DriverConfig{
			{Driver: sampler, Handles: []api.Handle{api.HandleGyroscope}},
		},
		Sensors: []catalog.Descriptor{
			{Name: "test gyro", Handle: api.HandleGyroscope, Type: api.TypeGyroscope},
		},
	}, mux.WithLogger(golog.NewTestLogger(t)))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer dev.Close()

	if code := dev.SetDelay(int(api.HandleGyroscope), int64(time.Millisecond)); code != 0 {
		t.Fatalf("SetDelay = %d", code)
	}
	if code := dev.Activate(int(api.HandleGyroscope), true); code != 0 {
		t.Fatalf("Activate = %d", code)
	}

	buf := make([]api.Event, 16)
	collected := 0
	deadline := time.Now().Add(2 * time.Second)
	for collected < 3 && time.Now().Before(deadline) {
		n := dev.Poll(buf)
		if n < 0 {
			t.Fatalf("Poll = %d", n)
		}
		collected += n
	}
	if collected < 3 {
		t.Fatalf("collected %d events within deadline, want >= 3", collected)
	}

	dev.Shutdown()
	if code := dev.Poll(buf); code != -int(unix.ENODEV) {
		t.Errorf("Poll after Shutdown = %d, want -ENODEV", code)
	}
}
