// Package api defines the contracts between the polling core and its
// collaborators: the per-sensor driver capability, the fixed-layout event
// record carried through the pipeline, the stable sensor handle space, and
// the error kinds surfaced to hosts.
package api
