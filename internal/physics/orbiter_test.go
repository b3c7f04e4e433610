package physics

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestOrbiterFirstStepAcceleration(t *testing.T) {
	a := &Attractor{Pos: r2.Point{X: 500, Y: 500}, Mass: 2000, Radius: 20}
	o := NewOrbiter(r2.Point{X: 400, Y: 500}, r2.Point{}, 2, TintCyan, 20)

	fate := o.Update(a, NewBounds(1000, 1000, 1000))
	if fate != Alive {
		t.Fatalf("expected alive, got %v", fate)
	}

	if math.Abs(o.Vel.X-0.2) > 1e-12 || math.Abs(o.Vel.Y) > 1e-12 {
		t.Errorf("expected velocity (0.2, 0), got %v", o.Vel)
	}
	if math.Abs(o.Pos.X-400.2) > 1e-12 || o.Pos.Y != 500 {
		t.Errorf("expected position (400.2, 500), got %v", o.Pos)
	}
}

func TestOrbiterAccelerationDirection(t *testing.T) {
	a := &Attractor{Pos: r2.Point{}, Mass: 2000, Radius: 20}
	tests := []struct {
		name string
		pos  r2.Point
	}{
		{"right", r2.Point{X: 100}},
		{"below", r2.Point{Y: 100}},
		{"diagonal", r2.Point{X: -60, Y: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrbiter(tt.pos, r2.Point{}, 1, TintCyan, 20)
			o.Update(a, NewBounds(0, 0, 1000))

			if got := o.Vel.Norm(); math.Abs(got-0.2) > 1e-12 {
				t.Errorf("acceleration magnitude = %v, want 0.2", got)
			}
			toward := a.Pos.Sub(tt.pos).Normalize()
			if dot := o.Vel.Normalize().Dot(toward); math.Abs(dot-1) > 1e-12 {
				t.Errorf("acceleration not directed at attractor, dot=%v", dot)
			}
		})
	}
}

func TestOrbiterCaptured(t *testing.T) {
	a := &Attractor{Pos: r2.Point{X: 400, Y: 300}, Mass: 960, Radius: 20}
	start := r2.Point{X: 410, Y: 300}
	o := NewOrbiter(start, r2.Point{X: 1}, 2, TintPurple, 20)

	if fate := o.Update(a, NewBounds(800, 600, 1000)); fate != Captured {
		t.Fatalf("expected captured, got %v", fate)
	}
	if o.Pos != start {
		t.Errorf("captured orbiter moved to %v", o.Pos)
	}
	if o.Trail.Len() != 0 {
		t.Errorf("captured orbiter grew its trail")
	}
}

func TestOrbiterEscapedCommitsFinalStep(t *testing.T) {
	a := &Attractor{Pos: r2.Point{X: 400, Y: 300}, Mass: 960, Radius: 20}
	o := NewOrbiter(r2.Point{X: 100, Y: 100}, r2.Point{X: -3000}, 2, TintCyan, 20)

	if fate := o.Update(a, NewBounds(800, 600, 1000)); fate != Escaped {
		t.Fatalf("expected escaped, got %v", fate)
	}
	if o.Pos.X >= -1000 {
		t.Errorf("expected position beyond margin, got %v", o.Pos)
	}
	if o.Trail.Len() != 1 || o.Trail.At(0) != o.Pos {
		t.Errorf("final step not committed to trail")
	}
}

func TestOrbiterEscapeEdgeIsInside(t *testing.T) {
	a := &Attractor{Pos: r2.Point{}, Mass: 0, Radius: 20}
	o := NewOrbiter(r2.Point{X: -999}, r2.Point{X: -1}, 1, TintCyan, 20)

	if fate := o.Update(a, NewBounds(0, 0, 1000)); fate != Alive {
		t.Errorf("orbiter on the margin edge should be alive, got %v", fate)
	}
	if fate := o.Update(a, NewBounds(0, 0, 1000)); fate != Escaped {
		t.Errorf("orbiter past the margin should escape, got %v", fate)
	}
}

func TestOrbiterTrailBounded(t *testing.T) {
	a := &Attractor{Pos: r2.Point{X: 400, Y: 300}, Mass: 960, Radius: 20}
	o := NewOrbiter(r2.Point{X: 400, Y: 100}, r2.Point{X: 2.2}, 2, TintCyan, DefaultTrailLength)
	b := NewBounds(800, 600, 1000)

	for i := 0; i < 200; i++ {
		if o.Update(a, b).Dead() {
			break
		}
		if o.Trail.Len() > DefaultTrailLength {
			t.Fatalf("trail length %d exceeds %d at step %d", o.Trail.Len(), DefaultTrailLength, i)
		}
	}
	if o.Trail.At(o.Trail.Len()-1) != o.Pos {
		t.Error("newest trail point should be the current position")
	}
}

func TestFate(t *testing.T) {
	tests := []struct {
		fate Fate
		dead bool
		name string
	}{
		{Alive, false, "alive"},
		{Captured, true, "captured"},
		{Escaped, true, "escaped"},
	}
	for _, tt := range tests {
		if tt.fate.Dead() != tt.dead {
			t.Errorf("%v.Dead() = %v", tt.fate, tt.fate.Dead())
		}
		if tt.fate.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.fate.String(), tt.name)
		}
	}
}
