// File: catalog/catalog.go
// Static sensor descriptor table. Pure configuration data consumed by the
// host's enumeration call; the polling core never reads it.

package catalog

import (
	"time"

	"github.com/embhal/sensormux/api"
)

// Descriptor describes one advertised sensor.
type Descriptor struct {
	Name       string
	Vendor     string
	Version    int
	Handle     api.Handle
	Type       api.SensorType
	MaxRange   float32 // in the sensor's unit
	Resolution float32
	Power      float32 // mA while active
	MinDelay   time.Duration
}

// Default returns the stock descriptor set for the reference board: a
// CM3663 light/proximity pair, an AK8975 compass serving both magnetic
// field and orientation, a KXTF9 accelerometer, an MPU3050 gyroscope and
// an NCT1008 temperature sensor.
func Default() []Descriptor {
	return []Descriptor{
		{
			Name: "CM3663 Light sensor", Vendor: "Capella Microsystems",
			Version: 1, Handle: api.HandleLight, Type: api.TypeLight,
			MaxRange: 10240.0, Resolution: 1.0, Power: 0.75,
		},
		{
			Name: "AK8975 Orientation sensor", Vendor: "Asahi Kasei Microdevices",
			Version: 1, Handle: api.HandleOrientation, Type: api.TypeOrientation,
			MaxRange: 360.0, Resolution: 1.0 / 64.0, Power: 7.8,
			MinDelay: 200 * time.Millisecond,
		},
		{
			Name: "KXTF9 3-axis Accelerometer", Vendor: "Kionix",
			Version: 1, Handle: api.HandleAccelerometer, Type: api.TypeAccelerometer,
			MaxRange: 19.61, Resolution: 0.019, Power: 0.23,
			MinDelay: 50 * time.Millisecond,
		},
		{
			Name: "AK8975 3-axis Magnetic field sensor", Vendor: "Asahi Kasei Microdevices",
			Version: 1, Handle: api.HandleMagneticField, Type: api.TypeMagneticField,
			MaxRange: 2000.0, Resolution: 0.06, Power: 6.8,
			MinDelay: 100 * time.Millisecond,
		},
		{
			Name: "MPU3050 Gyroscope sensor", Vendor: "InvenSense",
			Version: 1, Handle: api.HandleGyroscope, Type: api.TypeGyroscope,
			MaxRange: 34.9, Resolution: 0.0011, Power: 6.1,
			MinDelay: 50 * time.Millisecond,
		},
		{
			Name: "NCT1008 Battery Temperature", Vendor: "ON Semiconductor",
			Version: 1, Handle: api.HandleTemperature, Type: api.TypeTemperature,
			MaxRange: 127.0, Resolution: 1.0, Power: 0.24,
			MinDelay: 500 * time.Millisecond,
		},
		{
			Name: "CM3663 Proximity sensor", Vendor: "Capella Microsystems",
			Version: 1, Handle: api.HandleProximity, Type: api.TypeProximity,
			MaxRange: 5.0, Resolution: 5.0, Power: 0.75,
		},
	}
}
