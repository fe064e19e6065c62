// Package device is the thin adapter between a host's generic sensor
// device surface (open, close, activate, setDelay, poll with errno-style
// return codes) and the polling core. It holds no logic of its own beyond
// lifecycle glue and error translation.
package device
