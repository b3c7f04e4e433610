package physics

import "github.com/golang/geo/r2"

type Tint uint8

const (
	TintCyan Tint = iota
	TintPurple
)

func (t Tint) String() string {
	if t == TintPurple {
		return "purple"
	}
	return "cyan"
}

// Fate is the outcome of one orbiter update.
type Fate uint8

const (
	Alive Fate = iota
	Captured
	Escaped
)

func (f Fate) Dead() bool { return f != Alive }

func (f Fate) String() string {
	switch f {
	case Captured:
		return "captured"
	case Escaped:
		return "escaped"
	default:
		return "alive"
	}
}

type Orbiter struct {
	ID     uint64
	Pos    r2.Point
	Vel    r2.Point
	Radius float64
	Tint   Tint
	Trail  *Trail
}

func NewOrbiter(pos, vel r2.Point, radius float64, tint Tint, trailLen int) *Orbiter {
	return &Orbiter{
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Tint:   tint,
		Trail:  NewTrail(trailLen),
	}
}

// Update advances the orbiter by one frame under a's pull.
//
// A body already inside the horizon is reported Captured untouched. An
// escaping body keeps the mutation of this frame; its final position and
// trail are simply discarded by the owner.
func (o *Orbiter) Update(a *Attractor, b Bounds) Fate {
	acc, dist := a.Pull(o.Pos)
	if dist < a.Radius {
		return Captured
	}

	o.Pos, o.Vel = SymplecticEuler(o.Pos, o.Vel, acc)
	o.Trail.Push(o.Pos)

	if !b.Contains(o.Pos) {
		return Escaped
	}
	return Alive
}
