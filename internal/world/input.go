package world

import "github.com/golang/geo/r2"

type GestureState uint8

const (
	Idle GestureState = iota
	Dragging
)

func (s GestureState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Gesture is the slingshot drag of the launch controller, in surface-local
// coordinates.
type Gesture struct {
	Active  bool
	Start   r2.Point
	Current r2.Point
}

func (g Gesture) State() GestureState {
	if g.Active {
		return Dragging
	}
	return Idle
}

// Velocity is the launch velocity for the gesture: the drag vector reversed
// and scaled.
func (g Gesture) Velocity(scale float64) r2.Point {
	return g.Start.Sub(g.Current).Mul(scale)
}

// PointerDown starts a drag at p.
func (w *World) PointerDown(p r2.Point) {
	w.drag = Gesture{Active: true, Start: p, Current: p}
}

// PointerMove tracks the pointer while dragging and is ignored otherwise.
func (w *World) PointerMove(p r2.Point) {
	if !w.drag.Active {
		return
	}
	w.drag.Current = p
}

// PointerUp ends the drag and launches an orbiter from its start point.
// It reports whether an orbiter was launched.
func (w *World) PointerUp() bool {
	if !w.drag.Active {
		return false
	}
	g := w.drag
	w.drag = Gesture{}
	w.launch(g.Start, g.Velocity(w.cfg.LaunchScale))
	return true
}
