package sim

import (
	"errors"

	"github.com/golang/geo/r2"

	"github.com/san-kum/gravwell/internal/world"
)

var ErrInvalidRun = errors.New("invalid run")

// Metric folds per-frame observations of a world into a single value.
type Metric interface {
	Name() string
	Observe(w *world.World, s world.TickStats)
	Value() float64
	Reset()
}

// Gesture is a scripted drag. The pointer goes down at From on Frame, moves
// toward To over Hold frames and is released at To.
type Gesture struct {
	Frame uint64
	Hold  int
	From  r2.Point
	To    r2.Point
}

type Config struct {
	Frames int
	Width  float64
	Height float64
}

// FrameStats is one row of a run. Captured and Escaped count removals in
// that frame; Energy is the mean specific energy of the orbiters still live.
type FrameStats struct {
	Frame    uint64
	Live     int
	Launched int
	Captured int
	Escaped  int
	Energy   float64
}

type Result struct {
	Frames   []FrameStats
	Metrics  map[string]float64
	Launched int
	Captured int
	Escaped  int
}

// Live returns the orbiter count after the last frame.
func (r *Result) Live() int {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Live
}

// Series returns one column of the run, for plotting.
func (r *Result) Series(col string) ([]float64, bool) {
	pick, ok := columns[col]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = pick(f)
	}
	return out, true
}

var columns = map[string]func(FrameStats) float64{
	"live":     func(f FrameStats) float64 { return float64(f.Live) },
	"launched": func(f FrameStats) float64 { return float64(f.Launched) },
	"captured": func(f FrameStats) float64 { return float64(f.Captured) },
	"escaped":  func(f FrameStats) float64 { return float64(f.Escaped) },
	"energy":   func(f FrameStats) float64 { return f.Energy },
}

// Columns lists the names accepted by Result.Series.
func Columns() []string {
	return []string{"live", "launched", "captured", "escaped", "energy"}
}
