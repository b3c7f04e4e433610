package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blankCell = 0x2800
	// dots dimmer than this are switched off by a fade
	fadeFloor = 0.1
)

// Canvas is a braille dot surface. Every dot keeps a brightness and a colour
// so that Fade can dim old strokes instead of clearing them. Surface units
// map to dots through Scale.
type Canvas struct {
	Width, Height int
	Scale         float64

	level  []float32
	ink    []color.RGBA
	bg     color.RGBA
	styles map[color.RGBA]lipgloss.Style
}

func NewCanvas(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	n := w * 2 * h * 4
	return &Canvas{
		Width:  w,
		Height: h,
		Scale:  scale,
		level:  make([]float32, n),
		ink:    make([]color.RGBA, n),
		styles: make(map[color.RGBA]lipgloss.Style),
	}
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// SurfaceSize returns the canvas size in surface units.
func (c *Canvas) SurfaceSize() (float64, float64) {
	dw, dh := c.Dots()
	return float64(dw) * c.Scale, float64(dh) * c.Scale
}

func (c *Canvas) index(x, y int) (int, bool) {
	dw, dh := c.Dots()
	if x < 0 || y < 0 || x >= dw || y >= dh {
		return 0, false
	}
	return y*dw + x, true
}

// Set lights the dot at (x, y) with col. Opaque near-black paints erase.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	i, ok := c.index(x, y)
	if !ok {
		return
	}
	if isShadow(col) {
		c.level[i] = 0
		return
	}
	c.level[i] = float32(col.A) / 255
	c.ink[i] = col
}

// Unset clears a dot.
func (c *Canvas) Unset(x, y int) {
	if i, ok := c.index(x, y); ok {
		c.level[i] = 0
	}
}

func (c *Canvas) Lit(x, y int) bool {
	i, ok := c.index(x, y)
	return ok && c.level[i] > 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	clear(c.level)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.RGBA) {
	c.walkLine(x0, y0, x1, y1, func(x, y, _ int) { c.Set(x, y, col) })
}

func (c *Canvas) walkLine(x0, y0, x1, y1 int, plot func(x, y, step int)) {
	dw, dh := c.Dots()
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= dw && x1 >= dw) || (y0 >= dh && y1 >= dh) {
		return
	}

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for step := 0; ; step++ {
		plot(x0, y0, step)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) dot(p r2.Point) (int, int) {
	return int(math.Floor(p.X / c.Scale)), int(math.Floor(p.Y / c.Scale))
}

// Fade dims every dot by alpha and remembers bg as the colour dots fade to.
func (c *Canvas) Fade(bg color.RGBA, alpha float64) {
	c.bg = bg
	keep := float32(1 - alpha)
	for i, l := range c.level {
		if l == 0 {
			continue
		}
		l *= keep
		if l < fadeFloor {
			l = 0
		}
		c.level[i] = l
	}
}

func (c *Canvas) FillCircle(center r2.Point, radius float64, col color.RGBA) {
	cx, cy := center.X/c.Scale, center.Y/c.Scale
	r := radius / c.Scale
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				c.Set(x, y, col)
			}
		}
	}
	x, y := c.dot(center)
	c.Set(x, y, col)
}

func (c *Canvas) StrokeCircle(center r2.Point, radius, width float64, col color.RGBA) {
	cx, cy := center.X/c.Scale, center.Y/c.Scale
	r := radius / c.Scale
	n := int(4*math.Pi*r) + 16
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c.Set(int(math.Floor(cx+r*math.Cos(a))), int(math.Floor(cy+r*math.Sin(a))), col)
	}
}

func (c *Canvas) DashedLine(from, to r2.Point, dash float64, col color.RGBA) {
	run := int(math.Round(dash / c.Scale))
	if run < 1 {
		run = 1
	}
	x0, y0 := c.dot(from)
	x1, y1 := c.dot(to)
	c.walkLine(x0, y0, x1, y1, func(x, y, step int) {
		if (step/run)%2 == 0 {
			c.Set(x, y, col)
		}
	})
}

// Polyline draws connected segments; stroke width is always one dot.
func (c *Canvas) Polyline(pts []r2.Point, _ float64, col color.RGBA) {
	if len(pts) == 0 {
		return
	}
	px, py := c.dot(pts[0])
	c.Set(px, py, col)
	for _, p := range pts[1:] {
		x, y := c.dot(p)
		c.DrawLine(px, py, x, y, col)
		px, py = x, y
	}
}

// cell returns the braille rune of a cell and the colour of its brightest dot.
func (c *Canvas) cell(row, col int) (rune, color.RGBA, float32) {
	r := rune(blankCell)
	var ink color.RGBA
	var best float32
	for sy := 0; sy < 4; sy++ {
		for sx := 0; sx < 2; sx++ {
			i, _ := c.index(col*2+sx, row*4+sy)
			if l := c.level[i]; l > 0 {
				r |= rune(pixelMap[sy][sx])
				if l > best {
					best, ink = l, c.ink[i]
				}
			}
		}
	}
	return r, ink, best
}

// Plain renders the dots without colour.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _, _ := c.cell(row, col)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the canvas with each cell coloured by its brightest dot,
// blended toward the background by how far that dot has faded.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, ink, level := c.cell(row, col)
			if level == 0 {
				b.WriteRune(r)
				continue
			}
			b.WriteString(c.style(c.shade(ink, level)).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) shade(ink color.RGBA, level float32) color.RGBA {
	// 16 shade steps keep the style cache small
	t := math.Round(float64(level)*16) / 16
	out := toColorful(c.bg).BlendRgb(toColorful(ink), t).Clamped()
	r, g, b := out.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func (c *Canvas) style(col color.RGBA) lipgloss.Style {
	if s, ok := c.styles[col]; ok {
		return s
	}
	hex := colorful.Color{R: float64(col.R) / 255, G: float64(col.G) / 255, B: float64(col.B) / 255}.Hex()
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	c.styles[col] = s
	return s
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func isShadow(c color.RGBA) bool {
	return c.A == 255 && int(c.R)+int(c.G)+int(c.B) < 24
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
