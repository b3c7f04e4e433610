package physics

import (
	"testing"

	"github.com/golang/geo/r2"
)

func TestTrailFIFO(t *testing.T) {
	tr := NewTrail(3)
	for i := 1; i <= 5; i++ {
		tr.Push(r2.Point{X: float64(i)})
	}

	if tr.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", tr.Len())
	}
	pts := tr.Points(nil)
	for i, want := range []float64{3, 4, 5} {
		if pts[i].X != want {
			t.Errorf("point %d = %v, want x=%v", i, pts[i], want)
		}
	}
}

func TestTrailReset(t *testing.T) {
	tr := NewTrail(2)
	tr.Push(r2.Point{X: 1})
	tr.Reset()
	if tr.Len() != 0 {
		t.Errorf("expected empty trail after reset")
	}
	tr.Push(r2.Point{X: 7})
	if tr.At(0).X != 7 {
		t.Errorf("expected 7 after reset push, got %v", tr.At(0))
	}
}

func TestTrailMinimumCapacity(t *testing.T) {
	tr := NewTrail(0)
	if tr.Cap() != 1 {
		t.Errorf("expected capacity clamp to 1, got %d", tr.Cap())
	}
}
