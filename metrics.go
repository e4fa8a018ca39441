package chly

import "sync/atomic"

type containerMetrics struct {
	registrations atomic.Uint64
	resolutions   atomic.Uint64
	failures      atomic.Uint64
}

// Stats is a point-in-time snapshot of container activity.
type Stats struct {
	Registrations uint64
	Resolutions   uint64
	Failures      uint64
}

// Stats returns counters for stored registrations, Resolve calls, and failed
// Resolve calls.
func (c *Container) Stats() Stats {
	return Stats{
		Registrations: c.metrics.registrations.Load(),
		Resolutions:   c.metrics.resolutions.Load(),
		Failures:      c.metrics.failures.Load(),
	}
}
