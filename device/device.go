// File: device/device.go
// HAL-style device adapter over the poll context.

package device

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/embhal/sensormux/api"
	"github.com/embhal/sensormux/catalog"
	"github.com/embhal/sensormux/mux"
)

// Config assembles a device: the ordered driver set and the descriptor
// catalog advertised to the host. Every cataloged handle must resolve to
// a configured driver slot.
type Config struct {
	Drivers []mux.DriverConfig
	Sensors []catalog.Descriptor
}

// Device exposes the host-facing vtable. Methods return an event count or
// zero on success and a negative errno on failure, matching the classic
// sensors HAL calling convention.
type Device struct {
	ctx     *mux.PollContext
	sensors []catalog.Descriptor
}

// Open constructs the poll context and validates the catalog against the
// configured drivers.
func Open(cfg Config, opts ...mux.Option) (*Device, error) {
	ctx, err := mux.New(cfg.Drivers, opts...)
	if err != nil {
		return nil, err
	}
	for _, desc := range cfg.Sensors {
		if !ctx.Mapped(desc.Handle) {
			_ = ctx.Close()
			return nil, pkgerrors.Wrapf(api.ErrInvalidHandle, "cataloged sensor %q", desc.Name)
		}
	}
	return &Device{
		ctx:     ctx,
		sensors: append([]catalog.Descriptor(nil), cfg.Sensors...),
	}, nil
}

// Sensors returns the advertised descriptor list.
func (d *Device) Sensors() []catalog.Descriptor {
	return append([]catalog.Descriptor(nil), d.sensors...)
}

// Activate enables or disables one sensor.
func (d *Device) Activate(handle int, enabled bool) int {
	return errnoCode(d.ctx.Activate(api.Handle(handle), enabled))
}

// SetDelay sets the minimum sampling interval for one sensor.
func (d *Device) SetDelay(handle int, ns int64) int {
	return errnoCode(d.ctx.SetDelay(api.Handle(handle), time.Duration(ns)))
}

// Poll blocks until events are available and returns the count written
// into buf, or a negative errno.
func (d *Device) Poll(buf []api.Event) int {
	n, err := d.ctx.PollEvents(buf)
	if err != nil {
		return errnoCode(err)
	}
	return n
}

// Shutdown unblocks a consumer blocked in Poll without releasing any
// resources; that Poll (and every later one) returns -ENODEV. Hosts with
// a dedicated poll goroutine call Shutdown, join the goroutine, then
// Close.
func (d *Device) Shutdown() {
	d.ctx.Shutdown()
}

// Close shuts the context down and tears it down. It must not overlap an
// in-flight Poll on another goroutine; use Shutdown to end one first.
func (d *Device) Close() int {
	d.ctx.Shutdown()
	return errnoCode(d.ctx.Close())
}

// errnoCode translates core errors into negative errno-style codes.
func errnoCode(err error) int {
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, api.ErrInvalidHandle):
		return -int(unix.EINVAL)
	case errors.Is(err, api.ErrClosed):
		return -int(unix.ENODEV)
	}
	var failure *api.PollFailure
	if errors.As(err, &failure) {
		var errno unix.Errno
		if errors.As(failure.Cause, &errno) {
			return -int(errno)
		}
	}
	return -int(unix.EIO)
}
