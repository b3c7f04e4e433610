package physics

import "github.com/golang/geo/r2"

// SymplecticEuler advances one frame: velocity first, then position with the
// updated velocity.
func SymplecticEuler(pos, vel, acc r2.Point) (r2.Point, r2.Point) {
	vel = vel.Add(acc)
	return pos.Add(vel), vel
}
