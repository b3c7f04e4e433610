package physics

const (
	DefaultMassDivisor      = 500.0
	DefaultAttractorRadius  = 20.0
	DefaultTrailLength      = 20
	DefaultEscapeMargin     = 1000.0
	DefaultMinOrbiterRadius = 1.0
	DefaultMaxOrbiterRadius = 3.0
)

// Params holds the tuning constants of the gravity model. They are fixed
// once a world is built.
type Params struct {
	MassDivisor      float64
	AttractorRadius  float64
	TrailLength      int
	EscapeMargin     float64
	MinOrbiterRadius float64
	MaxOrbiterRadius float64
}

func DefaultParams() Params {
	return Params{
		MassDivisor:      DefaultMassDivisor,
		AttractorRadius:  DefaultAttractorRadius,
		TrailLength:      DefaultTrailLength,
		EscapeMargin:     DefaultEscapeMargin,
		MinOrbiterRadius: DefaultMinOrbiterRadius,
		MaxOrbiterRadius: DefaultMaxOrbiterRadius,
	}
}
