package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchClassicWaves(t *testing.T) {
	assert := assert.New(t)
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(600, cfg.Grid.Width)
	assert.Equal(600, cfg.Grid.Height)
	assert.Equal(1, cfg.Kernel.Radius)
	assert.Equal([]float32{0.565, -0.716, 0.565, -0.716, 0.627, -0.716, 0.565, -0.716, 0.565}, cfg.Kernel.Weights)
	assert.Equal("waves", cfg.Activation.Name)
	assert.Equal("single", cfg.Engine.Wrap)
	assert.Equal("uniform", cfg.Seed.Seeder)
	assert.Equal([]int{104, 212, 134}, cfg.Display.Tint)
	assert.Equal(2, cfg.Display.RenderEvery)
	assert.Equal(60, cfg.Display.TPS)
}

func TestLoadOverlaysUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nca.yaml")
	data := []byte("grid:\n  width: 32\nactivation:\n  name: worms\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Grid.Width)
	assert.Equal(t, 600, cfg.Grid.Height, "fields absent from the file keep defaults")
	assert.Equal(t, "worms", cfg.Activation.Name)
}

func TestOverlayKeepsExistingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kernel:\n  radius: 0\n  weights: [0.5]\n"), 0644))

	cfg := Default()
	cfg.Activation.Name = "worms"
	require.NoError(t, cfg.Overlay(path))
	assert.Equal(t, []float32{0.5}, cfg.Kernel.Weights)
	assert.Equal(t, "worms", cfg.Activation.Name)

	require.NoError(t, cfg.Overlay(""))
	cfg.Grid.Width = 0
	assert.ErrorIs(t, cfg.Overlay(""), ErrInvalidConfig)
}

func TestLoadRejectsBadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kernel:\n  radius: 2\n"), 0644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyPairs([]string{"w=40", "expr=math.sin(x)", "fft=true"}))

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestApply(t *testing.T) {
	assert := assert.New(t)
	cfg := Default()
	err := cfg.Apply(map[string]string{
		"w":       "64",
		"h":       "48",
		"radius":  "0",
		"weights": "0.5",
		"wrap":    "torus",
		"workers": "4",
		"seed":    "99",
		"seeder":  "noise",
		"tint":    "255, 0, 10",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(64, cfg.Grid.Width)
	assert.Equal(48, cfg.Grid.Height)
	assert.Equal(0, cfg.Kernel.Radius)
	assert.Equal([]float32{0.5}, cfg.Kernel.Weights)
	assert.Equal("torus", cfg.Engine.Wrap)
	assert.Equal(4, cfg.Engine.Workers)
	assert.Equal(int64(99), cfg.Seed.Value)
	assert.Equal([]int{255, 0, 10}, cfg.Display.Tint)
	assert.Len(cfg.EngineOptions(), 2)
}

func TestApplyErrors(t *testing.T) {
	for _, kv := range []map[string]string{
		{"colour": "red"},
		{"w": "wide"},
		{"weights": "1,x"},
		{"fft": "maybe"},
	} {
		err := Default().Apply(kv)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%v", kv)
	}
	assert.ErrorIs(t, Default().ApplyPairs([]string{"novalue"}), ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero width":       func(c *Config) { c.Grid.Width = 0 },
		"negative radius":  func(c *Config) { c.Kernel.Radius = -1 },
		"weight count":     func(c *Config) { c.Kernel.Weights = c.Kernel.Weights[:4] },
		"unknown activ":    func(c *Config) { c.Activation.Name = "softsign" },
		"unknown wrap":     func(c *Config) { c.Engine.Wrap = "mirror" },
		"no workers":       func(c *Config) { c.Engine.Workers = 0 },
		"unknown seeder":   func(c *Config) { c.Seed.Seeder = "checker" },
		"density":          func(c *Config) { c.Seed.Density = 2 },
		"tint channels":    func(c *Config) { c.Display.Tint = []int{1, 2} },
		"tint range":       func(c *Config) { c.Display.Tint = []int{1, 2, 300} },
		"render every":     func(c *Config) { c.Display.RenderEvery = 0 },
		"sample interval":  func(c *Config) { c.Run.SampleEvery = 0 },
		"zero pixel scale": func(c *Config) { c.Display.Scale = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	// An expression makes the activation name irrelevant.
	cfg := Default()
	cfg.Activation.Name = "softsign"
	cfg.Activation.Expr = "x * 0.5"
	assert.NoError(t, cfg.Validate())
}

func TestCloneIsDeep(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Kernel.Weights[0] = 9
	b.Display.Tint[0] = 9
	assert.NotEqual(t, a.Kernel.Weights[0], b.Kernel.Weights[0])
	assert.NotEqual(t, a.Display.Tint[0], b.Display.Tint[0])
}
