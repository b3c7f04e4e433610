package config

import (
	"fmt"
	"sort"
)

// Presets adjust the default physics. Each one starts from DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(*Config) {},
	"heavy": func(c *Config) {
		c.Physics.MassDivisor = 250
		c.Physics.AttractorRadius = 30
	},
	"long-trails": func(c *Config) {
		c.Physics.TrailLength = 60
		c.Physics.FadeAlpha = 0.08
	},
	"gentle": func(c *Config) {
		c.Physics.MassDivisor = 1500
		c.Physics.LaunchScale = 0.05
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset changes the physics of c to those of the named preset,
// leaving the host settings alone.
func ApplyPreset(c *Config, name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset %q", name)
	}
	c.Physics = p.Physics
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
