package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravwell/internal/physics"
	"github.com/san-kum/gravwell/internal/world"
)

const (
	DefaultFPS          = 60
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultTUIScale     = 4.0
	DefaultTheme        = "horizon"
	DefaultDataDir      = ".gravwell/runs"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Seed    int64         `yaml:"seed"`
	FPS     int           `yaml:"fps"`
	Theme   string        `yaml:"theme"`
	DataDir string        `yaml:"data_dir"`
	Window  WindowConfig  `yaml:"window"`
	TUI     TUIConfig     `yaml:"tui"`
	Physics PhysicsConfig `yaml:"physics"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TUIConfig holds terminal settings. Scale is surface units per braille dot.
type TUIConfig struct {
	Scale float64 `yaml:"scale"`
}

type PhysicsConfig struct {
	MassDivisor     float64    `yaml:"mass_divisor"`
	AttractorRadius float64    `yaml:"attractor_radius"`
	TrailLength     int        `yaml:"trail_length"`
	LaunchScale     float64    `yaml:"launch_scale"`
	EscapeMargin    float64    `yaml:"escape_margin"`
	OrbiterRadius   [2]float64 `yaml:"orbiter_radius,flow"`
	FadeAlpha       float64    `yaml:"fade_alpha"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:     DefaultFPS,
		Theme:   DefaultTheme,
		DataDir: DefaultDataDir,
		Window:  WindowConfig{Width: DefaultWindowWidth, Height: DefaultWindowHeight},
		TUI:     TUIConfig{Scale: DefaultTUIScale},
		Physics: PhysicsConfig{
			MassDivisor:     physics.DefaultMassDivisor,
			AttractorRadius: physics.DefaultAttractorRadius,
			TrailLength:     physics.DefaultTrailLength,
			LaunchScale:     world.DefaultLaunchScale,
			EscapeMargin:    physics.DefaultEscapeMargin,
			OrbiterRadius:   [2]float64{physics.DefaultMinOrbiterRadius, physics.DefaultMaxOrbiterRadius},
			FadeAlpha:       world.DefaultFadeAlpha,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.TUI.Scale <= 0:
		return fmt.Errorf("%w: tui scale must be positive, got %g", ErrInvalid, c.TUI.Scale)
	}
	if err := c.world(c.Seed).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// World returns the world configuration. A zero seed is replaced by one
// taken from the clock.
func (c *Config) World() world.Config {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return c.world(seed)
}

func (c *Config) world(seed int64) world.Config {
	p := c.Physics
	cfg := world.DefaultConfig()
	cfg.Seed = seed
	cfg.LaunchScale = p.LaunchScale
	cfg.FadeAlpha = p.FadeAlpha
	cfg.Physics = physics.Params{
		MassDivisor:      p.MassDivisor,
		AttractorRadius:  p.AttractorRadius,
		TrailLength:      p.TrailLength,
		EscapeMargin:     p.EscapeMargin,
		MinOrbiterRadius: p.OrbiterRadius[0],
		MaxOrbiterRadius: p.OrbiterRadius[1],
	}
	return cfg
}
