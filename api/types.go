// File: api/types.go
// Sensor handle space, sensor families, and the fixed-layout event record.

package api

// Handle identifies one logical sensor exposed to the host. Handles are
// stable for the life of the process; several handles may be served by a
// single physical driver (magnetic field and orientation typically share
// one compass chip).
type Handle int32

const (
	HandleLight Handle = iota + 1
	HandleProximity
	HandleAccelerometer
	HandleMagneticField
	HandleOrientation
	HandleGyroscope
	HandleTemperature
)

// String returns the conventional short name for a handle.
func (h Handle) String() string {
	switch h {
	case HandleLight:
		return "light"
	case HandleProximity:
		return "proximity"
	case HandleAccelerometer:
		return "accelerometer"
	case HandleMagneticField:
		return "magnetic_field"
	case HandleOrientation:
		return "orientation"
	case HandleGyroscope:
		return "gyroscope"
	case HandleTemperature:
		return "temperature"
	}
	return "unknown"
}

// SensorType classifies the measurement family of an event or descriptor.
type SensorType int32

const (
	TypeLight SensorType = iota + 1
	TypeProximity
	TypeAccelerometer
	TypeMagneticField
	TypeOrientation
	TypeGyroscope
	TypeTemperature
)

// Event is the fixed-layout record produced by a driver's ReadEvents and
// delivered to the host unmodified. The polling core never interprets Data;
// its meaning depends on Type (lux, centimeters, m/s^2 per axis, and so on).
type Event struct {
	Sensor    Handle
	Type      SensorType
	Timestamp int64 // nanoseconds, driver-chosen clock
	Data      [4]float32
}
