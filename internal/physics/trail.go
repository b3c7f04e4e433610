package physics

import "github.com/golang/geo/r2"

// Trail is a fixed-capacity FIFO of positions. Pushing onto a full trail
// drops the oldest point.
type Trail struct {
	buf   []r2.Point
	start int
	n     int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]r2.Point, capacity)}
}

func (t *Trail) Push(p r2.Point) {
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.buf) }

// At returns the i-th point, oldest first.
func (t *Trail) At(i int) r2.Point {
	return t.buf[(t.start+i)%len(t.buf)]
}

// Points appends the trail, oldest first, to dst.
func (t *Trail) Points(dst []r2.Point) []r2.Point {
	for i := 0; i < t.n; i++ {
		dst = append(dst, t.At(i))
	}
	return dst
}

func (t *Trail) Reset() {
	t.start, t.n = 0, 0
}
