package physics

import "github.com/golang/geo/r2"

// Bounds is the region an orbiter may roam before it counts as escaped:
// the surface rectangle grown by a margin on every side. The edges belong
// to the region.
type Bounds struct {
	rect r2.Rect
}

func NewBounds(w, h, margin float64) Bounds {
	surface := r2.RectFromPoints(r2.Point{}, r2.Point{X: w, Y: h})
	return Bounds{rect: surface.ExpandedByMargin(margin)}
}

func (b Bounds) Contains(p r2.Point) bool {
	return b.rect.ContainsPoint(p)
}

func (b Bounds) Rect() r2.Rect { return b.rect }
