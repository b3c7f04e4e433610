package metrics

import (
	"github.com/san-kum/gravwell/internal/sim"
	"github.com/san-kum/gravwell/internal/world"
)

// Counter totals one field of the per-frame stats.
type Counter struct {
	name  string
	pick  func(world.TickStats) int
	total int
}

func NewCounter(name string, pick func(world.TickStats) int) *Counter {
	return &Counter{name: name, pick: pick}
}

func NewLaunched() *Counter {
	return NewCounter("launched", func(s world.TickStats) int { return s.Launched })
}

func NewCaptured() *Counter {
	return NewCounter("captured", func(s world.TickStats) int { return s.Captured })
}

func NewEscaped() *Counter {
	return NewCounter("escaped", func(s world.TickStats) int { return s.Escaped })
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(_ *world.World, s world.TickStats) {
	c.total += c.pick(s)
}

func (c *Counter) Value() float64 { return float64(c.total) }
func (c *Counter) Reset()         { c.total = 0 }

// PeakLive records the largest number of orbiters alive after any frame.
type PeakLive struct {
	peak int
}

func NewPeakLive() *PeakLive { return &PeakLive{} }

func (p *PeakLive) Name() string { return "peak_live" }

func (p *PeakLive) Observe(_ *world.World, s world.TickStats) {
	p.peak = max(p.peak, s.Live)
}

func (p *PeakLive) Value() float64 { return float64(p.peak) }
func (p *PeakLive) Reset()         { p.peak = 0 }

// Standard returns the metrics recorded for every headless run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewLaunched(),
		NewCaptured(),
		NewEscaped(),
		NewPeakLive(),
		NewMeanEnergy(),
		NewCaptureRatio(),
	}
}
