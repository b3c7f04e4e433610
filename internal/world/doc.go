// Package world owns the gravity well simulation state and its frame loop.
//
// A [World] holds exactly one attractor, the live orbiters and the drag
// gesture of the launch controller. Hosts drive it from their repaint hook:
//
//	w, _ := world.New(world.DefaultConfig())
//	w.Resize(800, 600)
//	for host.NextFrame() {
//	    w.Tick(surface)
//	}
//
// Pointer and resize callbacks only mutate state; every draw happens inside
// [World.Tick]. A World is not safe for concurrent use: hosts call it from
// a single goroutine, one tick at a time.
package world
