package world

import (
	"github.com/golang/geo/r2"
	"github.com/san-kum/gravwell/internal/physics"
)

type EventKind uint8

const (
	Launched EventKind = iota
	Captured
	Escaped
)

func (k EventKind) String() string {
	switch k {
	case Captured:
		return "captured"
	case Escaped:
		return "escaped"
	default:
		return "launched"
	}
}

// Event reports an orbiter lifecycle transition.
type Event struct {
	Kind      EventKind
	Frame     uint64
	OrbiterID uint64
	Pos       r2.Point
	Vel       r2.Point
}

type Observer interface {
	OnEvent(e Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

func fateEvent(f physics.Fate) EventKind {
	if f == physics.Escaped {
		return Escaped
	}
	return Captured
}
