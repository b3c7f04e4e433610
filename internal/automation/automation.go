package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/golang/geo/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravwell/internal/logging"
	"github.com/san-kum/gravwell/internal/sim"
	"github.com/san-kum/gravwell/internal/world"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a scripted session: a surface size, a frame count and the
// drags to replay.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Width       float64  `yaml:"width"`
	Height      float64  `yaml:"height"`
	Frames      int      `yaml:"frames"`
	Seed        int64    `yaml:"seed"`
	Launches    []Launch `yaml:"launches"`
}

// Launch is one scripted drag. Either To or Velocity must be set; Velocity
// is converted back into the drag that would produce it.
type Launch struct {
	Frame    uint64      `yaml:"frame"`
	Hold     int         `yaml:"hold"`
	From     [2]float64  `yaml:"from"`
	To       *[2]float64 `yaml:"to,omitempty"`
	Velocity *[2]float64 `yaml:"velocity,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidScenario, sc.Frames)
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %gx%g", ErrInvalidScenario, sc.Width, sc.Height)
	}
	for i, l := range sc.Launches {
		switch {
		case l.Hold < 0:
			return fmt.Errorf("%w: launch %d has negative hold", ErrInvalidScenario, i+1)
		case l.To == nil && l.Velocity == nil:
			return fmt.Errorf("%w: launch %d needs to or velocity", ErrInvalidScenario, i+1)
		case l.To != nil && l.Velocity != nil:
			return fmt.Errorf("%w: launch %d sets both to and velocity", ErrInvalidScenario, i+1)
		}
	}
	return nil
}

// Gestures converts the launches into pointer gestures for a world whose
// launch scale is scale.
func (sc *Scenario) Gestures(scale float64) []sim.Gesture {
	out := make([]sim.Gesture, 0, len(sc.Launches))
	for _, l := range sc.Launches {
		from := r2.Point{X: l.From[0], Y: l.From[1]}
		var to r2.Point
		if l.To != nil {
			to = r2.Point{X: l.To[0], Y: l.To[1]}
		} else {
			v := r2.Point{X: l.Velocity[0], Y: l.Velocity[1]}
			to = from.Sub(v.Mul(1 / scale))
		}
		out = append(out, sim.Gesture{Frame: l.Frame, Hold: l.Hold, From: from, To: to})
	}
	return out
}

// Options carry what a scenario run needs besides the scenario itself.
type Options struct {
	World   world.Config
	Surface world.Surface
	Metrics func() []sim.Metric
	Log     *logging.Logger
}

func (o Options) logger() *logging.Logger {
	if o.Log == nil {
		return logging.Discard()
	}
	return o.Log
}

// Runner builds a headless runner for sc. A non-zero scenario seed
// overrides the configured one.
func Runner(sc *Scenario, opts Options) (*sim.Runner, error) {
	cfg := opts.World
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	w, err := world.New(cfg)
	if err != nil {
		return nil, err
	}
	r := sim.New(w, opts.Surface)
	r.Schedule(sc.Gestures(cfg.LaunchScale)...)
	if opts.Metrics != nil {
		for _, m := range opts.Metrics() {
			r.AddMetric(m)
		}
	}
	return r, nil
}

func (sc *Scenario) config() sim.Config {
	return sim.Config{Frames: sc.Frames, Width: sc.Width, Height: sc.Height}
}

// RunScenario replays sc once.
func RunScenario(ctx context.Context, sc *Scenario, opts Options) (*sim.Result, error) {
	log := opts.logger().With("scenario", sc.Name)
	r, err := Runner(sc, opts)
	if err != nil {
		return nil, err
	}

	log.Info("running scenario", "frames", sc.Frames, "launches", len(sc.Launches))
	result, err := r.Run(ctx, sc.config())
	if err != nil {
		return result, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	log.Info("scenario complete",
		"launched", result.Launched, "captured", result.Captured,
		"escaped", result.Escaped, "live", result.Live())
	return result, nil
}

// ParameterSweep replays a scenario across a range of one world parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Captured   int
	Escaped    int
	Live       int
	Energy     float64
}

// Params lists the names accepted by SetParam.
func Params() []string {
	return []string{"mass_divisor", "attractor_radius", "escape_margin", "trail_length", "launch_scale", "fade_alpha"}
}

// SetParam sets one named world parameter.
func SetParam(cfg *world.Config, name string, v float64) error {
	switch name {
	case "mass_divisor":
		cfg.Physics.MassDivisor = v
	case "attractor_radius":
		cfg.Physics.AttractorRadius = v
	case "escape_margin":
		cfg.Physics.EscapeMargin = v
	case "trail_length":
		cfg.Physics.TrailLength = int(v)
	case "launch_scale":
		cfg.LaunchScale = v
	case "fade_alpha":
		cfg.FadeAlpha = v
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sc *Scenario, sweep *ParameterSweep, opts Options) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	log := opts.logger().With("scenario", sc.Name, "param", sweep.ParamName)
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		stepOpts := opts
		if err := SetParam(&stepOpts.World, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}
		r, err := Runner(sc, stepOpts)
		if err != nil {
			return nil, fmt.Errorf("sweep step %d: %w", i+1, err)
		}
		result, err := r.Run(ctx, sc.config())
		if err != nil {
			return nil, err
		}

		energy := 0.0
		if n := len(result.Frames); n > 0 {
			energy = result.Frames[n-1].Energy
		}
		results = append(results, SweepResult{
			ParamValue: paramVal,
			Captured:   result.Captured,
			Escaped:    result.Escaped,
			Live:       result.Live(),
			Energy:     energy,
		})
		log.Debug("sweep step", "step", i+1, "of", sweep.NumSteps, "value", paramVal)
	}

	return results, nil
}

// MonteCarloConfig jitters every launch's release point by up to
// Perturbation surface units per axis.
type MonteCarloConfig struct {
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID  int
	Seed     int64
	Captured int
	Escaped  int
	Live     int
}

// RunMonteCarlo executes the trials concurrently. Each trial is
// reproducible from its seed.
func RunMonteCarlo(ctx context.Context, sc *Scenario, cfg *MonteCarloConfig, opts Options) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("monte carlo needs at least 1 trial, got %d", cfg.NumTrials)
	}

	gestures := sc.Gestures(opts.World.LaunchScale)
	trialOpts := opts
	trialOpts.Surface = nil

	build := func(seed int64) (*sim.Runner, error) {
		rng := rand.New(rand.NewSource(seed))
		trial := *sc
		trial.Seed = seed
		trial.Launches = make([]Launch, len(sc.Launches))
		for i, l := range sc.Launches {
			g := gestures[i]
			to := [2]float64{
				g.To.X + (rng.Float64()-0.5)*2*cfg.Perturbation,
				g.To.Y + (rng.Float64()-0.5)*2*cfg.Perturbation,
			}
			l.To, l.Velocity = &to, nil
			trial.Launches[i] = l
		}
		return Runner(&trial, trialOpts)
	}

	runs, err := sim.NewEnsemble(build, cfg.NumTrials, cfg.Seed).Run(ctx, sc.config())
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		results[i] = MonteCarloResult{
			TrialID:  i,
			Seed:     cfg.Seed + int64(i),
			Captured: r.Captured,
			Escaped:  r.Escaped,
			Live:     r.Live(),
		}
	}
	opts.logger().Info("monte carlo complete", "scenario", sc.Name, "trials", cfg.NumTrials)
	return results, nil
}

// MonteCarloStats totals the fates across all trials.
func MonteCarloStats(results []MonteCarloResult) (captured, escaped, live int) {
	for _, r := range results {
		captured += r.Captured
		escaped += r.Escaped
		live += r.Live
	}
	return
}
