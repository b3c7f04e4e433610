package world

import "errors"

var (
	// ErrNoSurface indicates the host could not provide a drawable surface.
	// The subsystem does not start; nothing else is affected.
	ErrNoSurface = errors.New("world: no rendering surface available")

	ErrInvalidConfig = errors.New("world: invalid configuration")
)
