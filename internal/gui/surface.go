package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"

	"github.com/san-kum/gravwell/internal/world"
)

// surface draws a tick into the currently bound render target.
type surface struct {
	w, h int32
}

func vec(p r2.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func (s surface) Fade(c color.RGBA, alpha float64) {
	rl.DrawRectangle(0, 0, s.w, s.h, rl.ColorAlpha(c, float32(alpha)))
}

func (surface) FillCircle(center r2.Point, radius float64, c color.RGBA) {
	rl.DrawCircleV(vec(center), float32(radius), c)
}

func (surface) StrokeCircle(center r2.Point, radius, width float64, c color.RGBA) {
	inner, outer := float32(radius-width/2), float32(radius+width/2)
	rl.DrawRing(vec(center), inner, outer, 0, 360, 64, c)
}

func (surface) DashedLine(from, to r2.Point, dash float64, c color.RGBA) {
	for _, seg := range world.DashSegments(from, to, dash) {
		rl.DrawLineEx(vec(seg[0]), vec(seg[1]), 1, c)
	}
}

func (surface) Polyline(pts []r2.Point, width float64, c color.RGBA) {
	thick := float32(max(width, 1))
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(vec(pts[i-1]), vec(pts[i]), thick, c)
	}
}
