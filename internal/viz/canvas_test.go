package viz

import (
	"image/color"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestCanvasSetAndPlain(t *testing.T) {
	c := NewCanvas(2, 1, 1)
	c.Set(0, 0, white)
	c.Set(3, 3, white)

	got := []rune(strings.TrimSuffix(c.Plain(), "\n"))
	if len(got) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(got))
	}
	if got[0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", got[0])
	}
	if got[1] != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", got[1])
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(1, 1, 1)
	c.Set(-1, 0, white)
	c.Set(0, 9, white)
	c.Set(2, 0, white)
	if strings.TrimSuffix(c.Plain(), "\n") != string(rune(blankCell)) {
		t.Error("out-of-range dots should be ignored")
	}
}

func TestCanvasFade(t *testing.T) {
	c := NewCanvas(1, 1, 1)
	c.Set(0, 0, white)

	for i := 0; i < 10; i++ {
		c.Fade(color.RGBA{A: 255}, 0.2)
	}
	if !c.Lit(0, 0) {
		t.Fatal("dot should survive ten fades")
	}
	c.Fade(color.RGBA{A: 255}, 0.2)
	if c.Lit(0, 0) {
		t.Error("dot should be gone after eleven fades")
	}
}

func TestCanvasShadowErases(t *testing.T) {
	c := NewCanvas(4, 2, 1)
	c.FillCircle(r2.Point{X: 4, Y: 4}, 3, white)
	if !c.Lit(4, 4) {
		t.Fatal("expected filled centre")
	}
	c.FillCircle(r2.Point{X: 4, Y: 4}, 3, color.RGBA{A: 255})
	if c.Lit(4, 4) {
		t.Error("opaque black fill should erase")
	}
}

func TestCanvasTinyCircleLightsCentre(t *testing.T) {
	c := NewCanvas(4, 2, 4)
	c.FillCircle(r2.Point{X: 10, Y: 10}, 1, white)
	if !c.Lit(2, 2) {
		t.Error("sub-dot circle should still light its centre dot")
	}
}

func TestCanvasDashedLine(t *testing.T) {
	c := NewCanvas(5, 1, 1)
	c.DashedLine(r2.Point{X: 0.5, Y: 0.5}, r2.Point{X: 9.5, Y: 0.5}, 2, white)

	want := []bool{true, true, false, false, true, true, false, false, true, true}
	for x, lit := range want {
		if c.Lit(x, 0) != lit {
			t.Errorf("dot %d lit = %v, want %v", x, c.Lit(x, 0), lit)
		}
	}
}

func TestCanvasPolyline(t *testing.T) {
	c := NewCanvas(5, 1, 1)
	c.Polyline([]r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}}, 0.5, white)
	for _, p := range [][2]int{{0, 0}, {2, 0}, {4, 0}, {4, 2}, {4, 3}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("expected dot %v lit", p)
		}
	}
	if c.Lit(9, 3) {
		t.Error("unexpected dot lit")
	}
}

func TestCanvasSurfaceSize(t *testing.T) {
	c := NewCanvas(10, 5, 4)
	w, h := c.SurfaceSize()
	if w != 80 || h != 80 {
		t.Errorf("SurfaceSize = %vx%v, want 80x80", w, h)
	}
}

func TestCanvasStringColoursLitCells(t *testing.T) {
	c := NewCanvas(2, 1, 1)
	c.Set(0, 0, white)
	out := c.String()
	if !strings.ContainsRune(out, 0x2801) {
		t.Error("lit cell missing from output")
	}
	if !strings.ContainsRune(out, blankCell) {
		t.Error("blank cell missing from output")
	}
}
