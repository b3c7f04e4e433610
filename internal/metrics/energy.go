package metrics

import (
	"github.com/san-kum/gravwell/internal/world"
)

// MeanEnergy averages the specific orbital energy over every live orbiter
// in every observed frame. Negative values mean the population is bound.
type MeanEnergy struct {
	name    string
	samples int
	total   float64
	buf     []float64
}

func NewMeanEnergy() *MeanEnergy {
	return &MeanEnergy{name: "mean_specific_energy"}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(w *world.World, _ world.TickStats) {
	e.buf = w.Energies(e.buf[:0])
	for _, v := range e.buf {
		e.total += v
		e.samples++
	}
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.total = 0
	e.samples = 0
}
