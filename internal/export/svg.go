package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravwell/internal/world"
)

// shapes fainter than this after fading are dropped
const opacityFloor = 0.02

type shape struct {
	markup  string
	opacity float64
}

// SVG is a world.Surface that keeps the picture as vector shapes. Fading
// lowers the opacity of everything drawn so far, which matches painting a
// translucent background over it.
type SVG struct {
	Width, Height float64

	bg     color.RGBA
	shapes []shape
}

func NewSVG(width, height float64) *SVG {
	return &SVG{Width: width, Height: height, bg: color.RGBA{A: 255}}
}

func (s *SVG) Len() int { return len(s.shapes) }

func (s *SVG) add(markup string, c color.RGBA) {
	s.shapes = append(s.shapes, shape{markup: markup, opacity: float64(c.A) / 255})
}

func (s *SVG) Fade(bg color.RGBA, alpha float64) {
	s.bg = bg
	keep := s.shapes[:0]
	for _, sh := range s.shapes {
		sh.opacity *= 1 - alpha
		if sh.opacity >= opacityFloor {
			keep = append(keep, sh)
		}
	}
	s.shapes = keep
}

func (s *SVG) FillCircle(center r2.Point, radius float64, c color.RGBA) {
	s.add(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"`, center.X, center.Y, radius, hex(c)), c)
}

func (s *SVG) StrokeCircle(center r2.Point, radius, width float64, c color.RGBA) {
	s.add(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="none" stroke="%s" stroke-width="%g"`,
		center.X, center.Y, radius, hex(c), width), c)
}

func (s *SVG) DashedLine(from, to r2.Point, dash float64, c color.RGBA) {
	s.add(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="%g %g"`,
		from.X, from.Y, to.X, to.Y, hex(c), dash, dash), c)
}

func (s *SVG) Polyline(pts []r2.Point, width float64, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
	}
	s.add(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="%g"`, sb.String(), hex(c), width), c)
}

// Document returns the picture as a standalone SVG file.
func (s *SVG) Document() string {
	var sb strings.Builder
	s.WriteTo(&sb)
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, hex(s.bg)))
	for _, sh := range s.shapes {
		fmt.Fprintf(&sb, "%s opacity=\"%.3f\"/>\n", sh.markup, sh.opacity)
	}
	sb.WriteString("</svg>\n")
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func hex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

var _ world.Surface = (*SVG)(nil)

// SeriesToSVG draws one run column as a line chart, frame on the x axis.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	last := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0f1c"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
