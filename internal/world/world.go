package world

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/san-kum/gravwell/internal/physics"
)

const (
	DefaultLaunchScale = 0.1
	DefaultFadeAlpha   = 0.2
)

type Config struct {
	Physics     physics.Params
	LaunchScale float64
	FadeAlpha   float64
	Seed        int64
	Palette     Palette
}

func DefaultConfig() Config {
	return Config{
		Physics:     physics.DefaultParams(),
		LaunchScale: DefaultLaunchScale,
		FadeAlpha:   DefaultFadeAlpha,
		Seed:        1,
		Palette:     DefaultPalette(),
	}
}

func (c Config) Validate() error {
	p := c.Physics
	switch {
	case p.MassDivisor <= 0:
		return fmt.Errorf("%w: mass divisor must be positive, got %g", ErrInvalidConfig, p.MassDivisor)
	case p.AttractorRadius <= 0:
		return fmt.Errorf("%w: attractor radius must be positive, got %g", ErrInvalidConfig, p.AttractorRadius)
	case p.TrailLength < 1:
		return fmt.Errorf("%w: trail length must be at least 1, got %d", ErrInvalidConfig, p.TrailLength)
	case p.EscapeMargin < 0:
		return fmt.Errorf("%w: escape margin must not be negative, got %g", ErrInvalidConfig, p.EscapeMargin)
	case p.MinOrbiterRadius <= 0 || p.MaxOrbiterRadius < p.MinOrbiterRadius:
		return fmt.Errorf("%w: orbiter radius range [%g, %g] is invalid", ErrInvalidConfig, p.MinOrbiterRadius, p.MaxOrbiterRadius)
	case c.LaunchScale <= 0:
		return fmt.Errorf("%w: launch scale must be positive, got %g", ErrInvalidConfig, c.LaunchScale)
	case c.FadeAlpha <= 0 || c.FadeAlpha > 1:
		return fmt.Errorf("%w: fade alpha must be in (0, 1], got %g", ErrInvalidConfig, c.FadeAlpha)
	}
	return nil
}

// TickStats summarises one frame.
type TickStats struct {
	Frame    uint64
	Live     int
	Launched int
	Captured int
	Escaped  int
}

// OrbiterView is a read-only copy of a live orbiter.
type OrbiterView struct {
	ID     uint64
	Pos    r2.Point
	Vel    r2.Point
	Radius float64
	Tint   physics.Tint
	Trail  []r2.Point
}

type World struct {
	cfg       Config
	attractor *physics.Attractor
	bounds    physics.Bounds
	orbiters  []*physics.Orbiter
	drag      Gesture
	rng       *rand.Rand
	observers []Observer

	width, height float64
	frame         uint64
	nextID        uint64
	launched      int
	trailBuf      []r2.Point
	pending       []Event
}

func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:       cfg,
		attractor: physics.NewAttractor(cfg.Physics),
		orbiters:  make([]*physics.Orbiter, 0, 64),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		trailBuf:  make([]r2.Point, 0, cfg.Physics.TrailLength),
	}
	w.Resize(0, 0)
	return w, nil
}

func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// Resize adapts the attractor and the escape bounds to a new surface size.
// Orbiters and their trails are left where they are.
func (w *World) Resize(width, height float64) {
	w.width, w.height = width, height
	w.attractor.Resize(width, height)
	w.bounds = physics.NewBounds(width, height, w.cfg.Physics.EscapeMargin)
}

// Tick advances and draws one frame. Orbiters are visited from last to
// first so removing the current one never skips another. Capture and escape
// events go out after the sweep, so observers may mutate the world.
func (w *World) Tick(s Surface) TickStats {
	stats := TickStats{Frame: w.frame, Launched: w.launched}
	w.launched = 0

	pal := w.cfg.Palette
	s.Fade(pal.Background, w.cfg.FadeAlpha)
	s.FillCircle(w.attractor.Pos, w.attractor.Radius, pal.Horizon)
	s.StrokeCircle(w.attractor.Pos, w.attractor.Radius, glowWidth, pal.Glow)

	if w.drag.Active {
		s.DashedLine(w.drag.Start, w.drag.Current, dashLength, pal.DragLine)
	}

	w.pending = w.pending[:0]
	for i := len(w.orbiters) - 1; i >= 0; i-- {
		o := w.orbiters[i]
		fate := o.Update(w.attractor, w.bounds)
		if !fate.Dead() {
			w.drawOrbiter(s, o)
			continue
		}

		if fate == physics.Escaped {
			stats.Escaped++
		} else {
			stats.Captured++
		}
		w.pending = append(w.pending, Event{Kind: fateEvent(fate), Frame: w.frame, OrbiterID: o.ID, Pos: o.Pos, Vel: o.Vel})
		w.orbiters = slices.Delete(w.orbiters, i, i+1)
	}

	stats.Live = len(w.orbiters)
	w.frame++
	for _, e := range w.pending {
		w.emit(e)
	}
	return stats
}

func (w *World) drawOrbiter(s Surface, o *physics.Orbiter) {
	w.trailBuf = o.Trail.Points(w.trailBuf[:0])
	s.Polyline(w.trailBuf, trailWidth, w.cfg.Palette.Tint(o.Tint))
	s.FillCircle(o.Pos, o.Radius, w.cfg.Palette.Head)
}

func (w *World) launch(pos, vel r2.Point) {
	p := w.cfg.Physics
	radius := p.MinOrbiterRadius + w.rng.Float64()*(p.MaxOrbiterRadius-p.MinOrbiterRadius)
	tint := physics.TintPurple
	if w.rng.Float64() > 0.5 {
		tint = physics.TintCyan
	}

	o := physics.NewOrbiter(pos, vel, radius, tint, p.TrailLength)
	w.nextID++
	o.ID = w.nextID
	w.orbiters = append(w.orbiters, o)
	w.launched++

	w.emit(Event{Kind: Launched, Frame: w.frame, OrbiterID: o.ID, Pos: pos, Vel: vel})
}

func (w *World) emit(e Event) {
	for _, o := range w.observers {
		o.OnEvent(e)
	}
}

// Clear drops every live orbiter without reporting them.
func (w *World) Clear() {
	clear(w.orbiters)
	w.orbiters = w.orbiters[:0]
}

func (w *World) Len() int       { return len(w.orbiters) }
func (w *World) Frame() uint64  { return w.frame }
func (w *World) Config() Config { return w.cfg }

func (w *World) Size() (float64, float64) { return w.width, w.height }

// Attractor returns a copy of the attractor state.
func (w *World) Attractor() physics.Attractor { return *w.attractor }

func (w *World) Gesture() Gesture { return w.drag }

func (w *World) Orbiters() []OrbiterView {
	views := make([]OrbiterView, len(w.orbiters))
	for i, o := range w.orbiters {
		views[i] = OrbiterView{
			ID:     o.ID,
			Pos:    o.Pos,
			Vel:    o.Vel,
			Radius: o.Radius,
			Tint:   o.Tint,
			Trail:  o.Trail.Points(nil),
		}
	}
	return views
}

// Energies appends the specific orbital energy of every live orbiter to dst.
// An orbiter sitting exactly on the attractor centre has no finite energy
// and is left out.
func (w *World) Energies(dst []float64) []float64 {
	for _, o := range w.orbiters {
		e := physics.SpecificEnergy(o, w.attractor)
		if math.IsInf(e, 0) || math.IsNaN(e) {
			continue
		}
		dst = append(dst, e)
	}
	return dst
}
