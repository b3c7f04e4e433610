// Package physics provides the single-body gravity model behind the well.
//
// A fixed [Attractor] pulls any number of independent [Orbiter] bodies with
// an inverse-square law. Orbiters never interact with each other.
//
//   - [Attractor]: point mass centred on the surface, mass scales with area
//   - [Orbiter]: launched body with a bounded [Trail] of past positions
//   - [Bounds]: escape region, the surface expanded by a margin
//
// Each call to [Orbiter.Update] advances one frame with semi-implicit Euler
// (dt = 1 frame) and reports the resulting [Fate].
//
// # Example
//
//	a := physics.NewAttractor(physics.DefaultParams())
//	a.Resize(800, 600)
//	o := physics.NewOrbiter(r2.Point{X: 100, Y: 100}, r2.Point{X: 5}, 2, physics.TintCyan, 20)
//	if o.Update(a, physics.NewBounds(800, 600, 1000)).Dead() {
//	    // drop it
//	}
package physics
