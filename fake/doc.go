// Package fake provides simulated sensor drivers for tests and examples:
// a queue-backed driver fed by the test itself and a clock-driven sampler
// that emits synthetic readings at the configured interval. Both satisfy
// the api.SensorDriver capability with real pipe-backed readiness, so the
// polling core exercises the same code paths as with hardware drivers.
package fake
