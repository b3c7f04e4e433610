// Package viz is the terminal host of the gravity well.
//
// The package drives a [world.World] from a Bubble Tea program:
//
//   - [Canvas]: braille dot surface with per-dot fading, implements world.Surface
//   - [Model]: tea.Model whose TickMsg is the repaint hook, one tick in flight
//   - Theme selection with 3 built-in color schemes for the sidebar
//
// # Key Bindings
//
//	Mouse - Drag and release to launch (pull back, let go)
//	Space - Pause/Resume simulation
//	C     - Clear all orbiters
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
