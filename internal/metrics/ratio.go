package metrics

import (
	"github.com/san-kum/gravwell/internal/world"
)

// CaptureRatio is the share of removed orbiters that fell into the
// attractor rather than escaping.
type CaptureRatio struct {
	name     string
	captured int
	removed  int
}

func NewCaptureRatio() *CaptureRatio {
	return &CaptureRatio{name: "capture_ratio"}
}

func (c *CaptureRatio) Name() string {
	return c.name
}

func (c *CaptureRatio) Observe(_ *world.World, s world.TickStats) {
	c.captured += s.Captured
	c.removed += s.Captured + s.Escaped
}

func (c *CaptureRatio) Value() float64 {
	if c.removed == 0 {
		return 0
	}
	return float64(c.captured) / float64(c.removed)
}

func (c *CaptureRatio) Reset() {
	c.captured = 0
	c.removed = 0
}
