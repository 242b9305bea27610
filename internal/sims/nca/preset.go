package nca

import (
	"fmt"
	"sort"

	"github.com/jon5th5n/neuralcellularautomata/internal/config"
	"github.com/jon5th5n/neuralcellularautomata/internal/core"
)

// Preset rewrites a config into a named automaton. Only the kernel, the
// activation and the seeder change; grid, engine and display settings stay.
type Preset func(cfg *config.Config)

func kernel3(act string, weights ...float32) Preset {
	return func(cfg *config.Config) {
		cfg.Kernel.Radius = 1
		cfg.Kernel.Weights = append([]float32(nil), weights...)
		cfg.Activation.Name = act
		cfg.Activation.Expr = ""
	}
}

var presets = map[string]Preset{
	"waves": kernel3("waves",
		0.565, -0.716, 0.565,
		-0.716, 0.627, -0.716,
		0.565, -0.716, 0.565),
	"worms": kernel3("worms",
		0.68, -0.9, 0.68,
		-0.9, -0.66, -0.9,
		0.68, -0.9, 0.68),
	"slime": kernel3("slime",
		0.8, -0.85, 0.8,
		-0.85, -0.2, -0.85,
		0.8, -0.85, 0.8),
	"mitosis": kernel3("mitosis",
		-0.939, 0.88, -0.939,
		0.88, 0.4, 0.88,
		-0.939, 0.88, -0.939),
	"pathways": kernel3("pathways",
		0, 1, 0,
		1, 1, 1,
		0, 1, 0),
	"life": func(cfg *config.Config) {
		kernel3("life",
			0.1, 0.1, 0.1,
			0.1, 0.9, 0.1,
			0.1, 0.1, 0.1)(cfg)
		cfg.Seed.Seeder = "sparse"
	},
}

// PresetNames lists the presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset rewrites cfg in place.
func ApplyPreset(name string, cfg *config.Config) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("%w %q", core.ErrUnknownSim, name)
	}
	p(cfg)
	return nil
}

// NewPreset builds a world from base with the named preset and overrides
// applied in that order. A nil base means the embedded defaults.
func NewPreset(name string, base *config.Config, overrides map[string]string) (*World, error) {
	var cfg *config.Config
	if base == nil {
		cfg = config.Default()
	} else {
		cfg = base.Clone()
	}
	if err := ApplyPreset(name, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}
	return NewWorld(name, cfg)
}

func init() {
	for name := range presets {
		core.Register(name, func(overrides map[string]string) (core.Sim, error) {
			return NewPreset(name, nil, overrides)
		})
	}
}
