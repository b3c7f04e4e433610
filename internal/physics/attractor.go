package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// Attractor is the fixed gravity source. Mass stands in for G*M.
type Attractor struct {
	Pos    r2.Point
	Mass   float64
	Radius float64

	divisor float64
}

func NewAttractor(p Params) *Attractor {
	return &Attractor{
		Radius:  p.AttractorRadius,
		divisor: p.MassDivisor,
	}
}

// Resize recentres the attractor on a w x h surface and rescales its mass
// to w*h/divisor. A zero-area surface gives zero mass.
func (a *Attractor) Resize(w, h float64) {
	a.Pos = r2.Point{X: w / 2, Y: h / 2}
	a.Mass = (w * h) / a.divisor
}

// Pull returns the acceleration the attractor exerts on a body at p together
// with the distance between them. Inside the horizon the acceleration is
// zero and the caller is expected to treat the body as captured.
func (a *Attractor) Pull(p r2.Point) (r2.Point, float64) {
	d := a.Pos.Sub(p)
	distSq := d.Dot(d)
	dist := math.Sqrt(distSq)
	if dist < a.Radius {
		return r2.Point{}, dist
	}
	force := a.Mass / distSq
	return r2.Point{X: force * (d.X / dist), Y: force * (d.Y / dist)}, dist
}

// Captures reports whether p lies inside the event horizon.
func (a *Attractor) Captures(p r2.Point) bool {
	return a.Pos.Sub(p).Norm() < a.Radius
}
