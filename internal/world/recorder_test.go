package world_test

import (
	"image/color"

	"github.com/golang/geo/r2"
)

type call struct {
	op     string
	at     r2.Point
	to     r2.Point
	radius float64
	color  color.RGBA
	points int
}

// recorder is a Surface that remembers every draw call.
type recorder struct {
	calls []call
}

func (r *recorder) Fade(c color.RGBA, alpha float64) {
	r.calls = append(r.calls, call{op: "fade", color: c, radius: alpha})
}

func (r *recorder) FillCircle(center r2.Point, radius float64, c color.RGBA) {
	r.calls = append(r.calls, call{op: "fill", at: center, radius: radius, color: c})
}

func (r *recorder) StrokeCircle(center r2.Point, radius, width float64, c color.RGBA) {
	r.calls = append(r.calls, call{op: "stroke", at: center, radius: radius, color: c})
}

func (r *recorder) DashedLine(from, to r2.Point, dash float64, c color.RGBA) {
	r.calls = append(r.calls, call{op: "dash", at: from, to: to, color: c})
}

func (r *recorder) Polyline(pts []r2.Point, width float64, c color.RGBA) {
	r.calls = append(r.calls, call{op: "polyline", points: len(pts), color: c})
}

func (r *recorder) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.op
	}
	return out
}

// heads returns the centres of all orbiter heads drawn in white.
func (r *recorder) heads() []r2.Point {
	var out []r2.Point
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, c := range r.calls {
		if c.op == "fill" && c.color == white {
			out = append(out, c.at)
		}
	}
	return out
}
