package world

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
)

// Surface is the drawable target of a tick, in surface-local units with the
// origin at the top-left corner. Colours carry straight (non-premultiplied)
// alpha.
type Surface interface {
	// Fade paints c over the whole surface with the given opacity.
	Fade(c color.RGBA, alpha float64)
	FillCircle(center r2.Point, radius float64, c color.RGBA)
	StrokeCircle(center r2.Point, radius, width float64, c color.RGBA)
	// DashedLine strokes from->to alternating dash-long strokes and gaps.
	DashedLine(from, to r2.Point, dash float64, c color.RGBA)
	Polyline(pts []r2.Point, width float64, c color.RGBA)
}

// Discard is a Surface that draws nothing, for headless runs.
var Discard Surface = discard{}

type discard struct{}

func (discard) Fade(color.RGBA, float64)                            {}
func (discard) FillCircle(r2.Point, float64, color.RGBA)            {}
func (discard) StrokeCircle(r2.Point, float64, float64, color.RGBA) {}
func (discard) DashedLine(r2.Point, r2.Point, float64, color.RGBA)  {}
func (discard) Polyline([]r2.Point, float64, color.RGBA)            {}

// DashSegments splits from->to into dash-long strokes separated by gaps of
// the same length. A zero-length line has no segments.
func DashSegments(from, to r2.Point, dash float64) [][2]r2.Point {
	d := to.Sub(from)
	length := d.Norm()
	if length == 0 {
		return nil
	}
	if dash <= 0 {
		return [][2]r2.Point{{from, to}}
	}
	dir := d.Mul(1 / length)
	segs := make([][2]r2.Point, 0, int(length/(2*dash))+1)
	for s := 0.0; s < length; s += 2 * dash {
		e := math.Min(s+dash, length)
		segs = append(segs, [2]r2.Point{from.Add(dir.Mul(s)), from.Add(dir.Mul(e))})
	}
	return segs
}
