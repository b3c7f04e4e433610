package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/gravwell/internal/world"
)

// Runner drives a world headlessly, replaying scripted gestures at fixed
// frames instead of reading a pointer.
type Runner struct {
	world    *world.World
	surface  world.Surface
	metrics  []Metric
	gestures []Gesture
}

// New returns a runner for w. A nil surface discards all drawing.
func New(w *world.World, s world.Surface) *Runner {
	if s == nil {
		s = world.Discard
	}
	return &Runner{
		world:    w,
		surface:  s,
		metrics:  make([]Metric, 0),
		gestures: make([]Gesture, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) Schedule(g ...Gesture)  { r.gestures = append(r.gestures, g...) }
func (r *Runner) World() *world.World    { return r.world }
func (r *Runner) Surface() world.Surface { return r.surface }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  make([]FrameStats, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	if cfg.Width > 0 || cfg.Height > 0 {
		r.world.Resize(cfg.Width, cfg.Height)
	}

	input := r.timeline()
	energies := make([]float64, 0, 64)
	start := r.world.Frame()

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		frame := start + uint64(i)
		for len(input) > 0 && input[0].frame <= frame {
			input[0].apply(r.world)
			input = input[1:]
		}

		stats := r.world.Tick(r.surface)
		for _, m := range r.metrics {
			m.Observe(r.world, stats)
		}

		energies = r.world.Energies(energies[:0])
		result.Frames = append(result.Frames, FrameStats{
			Frame:    stats.Frame,
			Live:     stats.Live,
			Launched: stats.Launched,
			Captured: stats.Captured,
			Escaped:  stats.Escaped,
			Energy:   mean(energies),
		})
		result.Launched += stats.Launched
		result.Captured += stats.Captured
		result.Escaped += stats.Escaped
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidRun, cfg.Frames)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return fmt.Errorf("%w: size must not be negative, got %gx%g", ErrInvalidRun, cfg.Width, cfg.Height)
	}
	for i, g := range r.gestures {
		if g.Hold < 0 {
			return fmt.Errorf("%w: gesture %d has negative hold %d", ErrInvalidRun, i, g.Hold)
		}
	}
	return nil
}

type pointerEvent struct {
	frame uint64
	seq   int
	apply func(w *world.World)
}

// timeline flattens the scheduled gestures into per-frame pointer events.
// Events in the same frame keep their scheduling order.
func (r *Runner) timeline() []pointerEvent {
	var events []pointerEvent
	add := func(frame uint64, fn func(w *world.World)) {
		events = append(events, pointerEvent{frame: frame, seq: len(events), apply: fn})
	}
	for _, g := range r.gestures {
		g := g
		add(g.Frame, func(w *world.World) { w.PointerDown(g.From) })
		for k := 1; k <= g.Hold; k++ {
			t := float64(k) / float64(g.Hold)
			p := g.From.Add(g.To.Sub(g.From).Mul(t))
			add(g.Frame+uint64(k), func(w *world.World) { w.PointerMove(p) })
		}
		end := g.Frame + uint64(g.Hold)
		if g.Hold == 0 {
			add(end, func(w *world.World) { w.PointerMove(g.To) })
		}
		add(end, func(w *world.World) { w.PointerUp() })
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].frame != events[j].frame {
			return events[i].frame < events[j].frame
		}
		return events[i].seq < events[j].seq
	})
	return events
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
