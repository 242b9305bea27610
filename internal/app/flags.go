package app

import (
	"flag"
	"fmt"
	"strings"

	"github.com/jon5th5n/neuralcellularautomata/internal/config"
	"github.com/jon5th5n/neuralcellularautomata/internal/sims/nca"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters shared by the commands.
// Zero values for Scale, TPS and Seed defer to the YAML config.
type Config struct {
	Preset     string
	ConfigPath string
	Scale      int
	TPS        int
	Seed       int64
	HUDWidth   int
	LogJSON    bool
	Sets       KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Preset: "waves", HUDWidth: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, fmt.Sprintf("automaton preset (%s)", strings.Join(nca.PresetNames(), ", ")))
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "path to a YAML config applied over the preset (empty = preset only)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier (0 = from config)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 = from config)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 = from config)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "log as JSON instead of text")
	fs.Var(&c.Sets, "set", "config override in key=value form (repeatable)")
}

// Load layers the preset, the YAML file and the -set overrides over the
// embedded defaults, in that order, and builds the world. Settings in the
// file therefore win over the preset.
func (c *Config) Load() (*nca.World, error) {
	base := config.Default()
	if err := nca.ApplyPreset(c.Preset, base); err != nil {
		return nil, err
	}
	if err := base.Overlay(c.ConfigPath); err != nil {
		return nil, err
	}
	if err := base.ApplyPairs(c.Sets); err != nil {
		return nil, err
	}
	if c.Scale > 0 {
		base.Display.Scale = c.Scale
	}
	if c.TPS > 0 {
		base.Display.TPS = c.TPS
	}
	if c.Seed != 0 {
		base.Seed.Value = c.Seed
	}
	return nca.NewWorld(c.Preset, base)
}
