package automation

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravwell/internal/world"
)

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario("testdata/slingshot.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "slingshot" || sc.Frames != 300 || len(sc.Launches) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	gs := sc.Gestures(0.1)
	if gs[0].From != gs[0].To {
		t.Errorf("expected a resting drop, got %+v", gs[0])
	}
	// velocity 50 at scale 0.1 is a 500 unit drag back
	if math.Abs(gs[1].To.X-290) > 1e-9 || gs[1].Hold != 5 || gs[1].Frame != 10 {
		t.Errorf("unexpected thrown gesture %+v", gs[1])
	}
}

func TestLoadScenarioInvalid(t *testing.T) {
	if _, err := LoadScenario("testdata/invalid.yaml"); !errors.Is(err, ErrInvalidScenario) {
		t.Errorf("expected ErrInvalidScenario, got %v", err)
	}
	if _, err := LoadScenario("testdata/missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	to := [2]float64{1, 1}
	tests := []struct {
		name string
		sc   Scenario
		ok   bool
	}{
		{"valid", Scenario{Frames: 1, Width: 10, Height: 10, Launches: []Launch{{To: &to}}}, true},
		{"no frames", Scenario{Width: 10, Height: 10}, false},
		{"no size", Scenario{Frames: 1}, false},
		{"negative hold", Scenario{Frames: 1, Width: 10, Height: 10, Launches: []Launch{{Hold: -1, To: &to}}}, false},
		{"both targets", Scenario{Frames: 1, Width: 10, Height: 10, Launches: []Launch{{To: &to, Velocity: &to}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario("testdata/slingshot.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	result, err := RunScenario(context.Background(), sc, Options{World: world.DefaultConfig()})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Launched != 2 || result.Captured != 1 || result.Escaped != 1 {
		t.Errorf("expected one capture and one escape, got %+v", result)
	}
}

func TestRunSweep(t *testing.T) {
	sc, err := LoadScenario("testdata/slingshot.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	sweep := &ParameterSweep{ParamName: "attractor_radius", ParamMin: 10, ParamMax: 30, NumSteps: 3}

	results, err := RunSweep(context.Background(), sc, sweep, Options{World: world.DefaultConfig()})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 || results[1].ParamValue != 20 {
		t.Fatalf("unexpected sweep results %+v", results)
	}

	sweep.ParamName = "bogus"
	if _, err := RunSweep(context.Background(), sc, sweep, Options{World: world.DefaultConfig()}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestRunMonteCarlo(t *testing.T) {
	sc, err := LoadScenario("testdata/slingshot.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	cfg := &MonteCarloConfig{Perturbation: 2, NumTrials: 4, Seed: 11}

	results, err := RunMonteCarlo(context.Background(), sc, cfg, Options{World: world.DefaultConfig()})
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(results))
	}
	captured, escaped, live := MonteCarloStats(results)
	if captured+escaped+live != 8 {
		t.Errorf("expected every launch accounted for, got %d/%d/%d", captured, escaped, live)
	}

	again, err := RunMonteCarlo(context.Background(), sc, cfg, Options{World: world.DefaultConfig()})
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}
	for i := range results {
		if results[i] != again[i] {
			t.Errorf("trial %d not reproducible: %+v vs %+v", i, results[i], again[i])
		}
	}
}
