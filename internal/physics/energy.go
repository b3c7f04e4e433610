package physics

import "math"

// SpecificEnergy is the orbital energy per unit mass of o around a:
// v^2/2 - M/r. Negative values are bound orbits.
func SpecificEnergy(o *Orbiter, a *Attractor) float64 {
	r := a.Pos.Sub(o.Pos).Norm()
	ke := 0.5 * o.Vel.Dot(o.Vel)
	if r == 0 {
		return math.Inf(-1)
	}
	return ke - a.Mass/r
}
