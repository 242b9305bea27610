// Package config loads automaton settings from YAML. Embedded defaults are
// read first and an optional user file overrides any fields it sets.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jon5th5n/neuralcellularautomata/internal/activation"
	"github.com/jon5th5n/neuralcellularautomata/internal/engine"
	"github.com/jon5th5n/neuralcellularautomata/internal/seed"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every Apply and Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full set of settings for one automaton and its runs.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Kernel     KernelConfig     `yaml:"kernel"`
	Activation ActivationConfig `yaml:"activation"`
	Engine     EngineConfig     `yaml:"engine"`
	Seed       SeedConfig       `yaml:"seed"`
	Display    DisplayConfig    `yaml:"display"`
	Run        RunConfig        `yaml:"run"`
}

// GridConfig sizes the cell grid.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// KernelConfig holds the neighborhood weights loaded into the engine.
type KernelConfig struct {
	Radius  int       `yaml:"radius"`
	Weights []float32 `yaml:"weights"` // (2r+1)² values, row by row from dj = -r
}

// ActivationConfig names a registered activation or gives a script for one.
type ActivationConfig struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"` // Starlark expression in x; wins over Name when set
}

// EngineConfig selects the boundary policy and the step implementation.
type EngineConfig struct {
	Wrap    string `yaml:"wrap"` // single | torus
	Workers int    `yaml:"workers"`
	FFT     bool   `yaml:"fft"`
}

// SeedConfig picks the seeder and its parameters.
type SeedConfig struct {
	Seeder     string  `yaml:"seeder"`
	Value      int64   `yaml:"value"`
	Density    float64 `yaml:"density"`
	NoiseScale float64 `yaml:"noise_scale"`
	Octaves    int     `yaml:"octaves"`
}

// DisplayConfig controls the viewer and rendered frames.
type DisplayConfig struct {
	Scale       int   `yaml:"scale"` // screen pixels per cell
	Tint        []int `yaml:"tint"`  // RGB, each channel scaled by the cell value
	RenderEvery int   `yaml:"render_every"`
	TPS         int   `yaml:"tps"`
}

// RunConfig drives headless runs.
type RunConfig struct {
	Steps       int    `yaml:"steps"`
	SampleEvery int    `yaml:"sample_every"`
	OutDir      string `yaml:"out_dir"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.Overlay(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads the file at path into c, so only the fields present in the
// file change, then validates the result. An empty path only validates.
func (c *Config) Overlay(path string) error {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	}
	return c.Validate()
}

// WriteYAML saves the config, for reproducing a run later.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Kernel.Weights = append([]float32(nil), c.Kernel.Weights...)
	out.Display.Tint = append([]int(nil), c.Display.Tint...)
	return &out
}

// Apply sets fields from flag-style key=value pairs, e.g. the repeatable
// -set option of the commands. Unknown keys and unparsable values fail.
func (c *Config) Apply(kv map[string]string) error {
	for key, v := range kv {
		if err := c.set(key, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
		}
	}
	return nil
}

// ApplyPairs parses "key=value" strings and applies them in order.
func (c *Config) ApplyPairs(pairs []string) error {
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("%w: override %q is not key=value", ErrInvalidConfig, p)
		}
		if err := c.Apply(map[string]string{strings.TrimSpace(key): value}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) set(key, v string) error {
	var err error
	switch key {
	case "w", "width":
		c.Grid.Width, err = strconv.Atoi(v)
	case "h", "height":
		c.Grid.Height, err = strconv.Atoi(v)
	case "radius":
		c.Kernel.Radius, err = strconv.Atoi(v)
	case "weights":
		c.Kernel.Weights, err = parseFloats(v)
	case "activation":
		c.Activation.Name = v
	case "expr":
		c.Activation.Expr = v
	case "wrap":
		c.Engine.Wrap = v
	case "workers":
		c.Engine.Workers, err = strconv.Atoi(v)
	case "fft":
		c.Engine.FFT, err = strconv.ParseBool(v)
	case "seeder":
		c.Seed.Seeder = v
	case "seed":
		c.Seed.Value, err = strconv.ParseInt(v, 10, 64)
	case "density":
		c.Seed.Density, err = strconv.ParseFloat(v, 64)
	case "noise_scale":
		c.Seed.NoiseScale, err = strconv.ParseFloat(v, 64)
	case "octaves":
		c.Seed.Octaves, err = strconv.Atoi(v)
	case "scale":
		c.Display.Scale, err = strconv.Atoi(v)
	case "tint":
		c.Display.Tint, err = parseInts(v)
	case "render_every":
		c.Display.RenderEvery, err = strconv.Atoi(v)
	case "tps":
		c.Display.TPS, err = strconv.Atoi(v)
	case "steps":
		c.Run.Steps, err = strconv.Atoi(v)
	case "sample_every":
		c.Run.SampleEvery, err = strconv.Atoi(v)
	case "out", "out_dir":
		c.Run.OutDir = v
	default:
		return errors.New("unknown key")
	}
	return err
}

func parseFloats(s string) ([]float32, error) {
	fields := strings.Split(s, ",")
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(v))
	}
	return out, nil
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return invalid("grid %dx%d must be positive", c.Grid.Width, c.Grid.Height)
	}
	if c.Kernel.Radius < 0 {
		return invalid("kernel radius %d is negative", c.Kernel.Radius)
	}
	span := 2*c.Kernel.Radius + 1
	if len(c.Kernel.Weights) != span*span {
		return invalid("kernel radius %d needs %d weights, have %d", c.Kernel.Radius, span*span, len(c.Kernel.Weights))
	}
	if c.Activation.Expr == "" {
		if _, err := activation.Lookup(c.Activation.Name); err != nil {
			return invalid("%v", err)
		}
	}
	if _, err := engine.ParseWrap(c.Engine.Wrap); err != nil {
		return invalid("%v", err)
	}
	if c.Engine.Workers < 1 {
		return invalid("engine workers %d must be at least 1", c.Engine.Workers)
	}
	if _, err := seed.Lookup(c.Seed.Seeder); err != nil {
		return invalid("%v", err)
	}
	if c.Seed.Density < 0 || c.Seed.Density > 1 {
		return invalid("seed density %g outside [0,1]", c.Seed.Density)
	}
	if c.Display.Scale < 1 {
		return invalid("display scale %d must be at least 1", c.Display.Scale)
	}
	if len(c.Display.Tint) != 3 {
		return invalid("display tint needs 3 channels, have %d", len(c.Display.Tint))
	}
	for _, ch := range c.Display.Tint {
		if ch < 0 || ch > 255 {
			return invalid("display tint channel %d outside [0,255]", ch)
		}
	}
	if c.Display.RenderEvery < 1 {
		return invalid("display render_every %d must be at least 1", c.Display.RenderEvery)
	}
	if c.Display.TPS < 1 {
		return invalid("display tps %d must be at least 1", c.Display.TPS)
	}
	if c.Run.Steps < 0 || c.Run.SampleEvery < 1 {
		return invalid("run steps %d / sample_every %d", c.Run.Steps, c.Run.SampleEvery)
	}
	return nil
}

// SeedOptions converts the seed section for the seed package.
func (c *Config) SeedOptions() seed.Options {
	return seed.Options{
		Density: c.Seed.Density,
		Scale:   c.Seed.NoiseScale,
		Octaves: c.Seed.Octaves,
	}
}

// EngineOptions converts the engine section. Validate must have passed.
func (c *Config) EngineOptions() []engine.Option {
	wrap, _ := engine.ParseWrap(c.Engine.Wrap)
	opts := []engine.Option{engine.WithWrap(wrap), engine.WithWorkers(c.Engine.Workers)}
	if c.Engine.FFT {
		opts = append(opts, engine.WithFFT())
	}
	return opts
}
