// Package nca hosts the registered automata. Each preset is a World: an
// engine plus the seeder that initializes it.
package nca

import (
	"strconv"

	"github.com/jon5th5n/neuralcellularautomata/internal/activation"
	"github.com/jon5th5n/neuralcellularautomata/internal/config"
	"github.com/jon5th5n/neuralcellularautomata/internal/core"
	"github.com/jon5th5n/neuralcellularautomata/internal/engine"
	"github.com/jon5th5n/neuralcellularautomata/internal/seed"
)

// World drives one engine from a validated config.
type World struct {
	name   string
	cfg    *config.Config
	eng    *engine.Engine
	seeder seed.Seeder
}

// NewWorld validates cfg, builds the engine and seeds it with cfg.Seed.Value.
func NewWorld(name string, cfg *config.Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	act, err := activation.Resolve(cfg.Activation.Name, cfg.Activation.Expr)
	if err != nil {
		return nil, err
	}
	seeder, err := seed.Lookup(cfg.Seed.Seeder)
	if err != nil {
		return nil, err
	}
	eng := engine.New(cfg.Grid.Width, cfg.Grid.Height, act, cfg.EngineOptions()...)
	if err := eng.LoadFilter(cfg.Kernel.Radius, cfg.Kernel.Weights); err != nil {
		return nil, err
	}
	w := &World{name: name, cfg: cfg.Clone(), eng: eng, seeder: seeder}
	w.Reset(0)
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return w.name }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.eng.Size() }

// Cells exposes the live row-major cell values.
func (w *World) Cells() []float32 { return w.eng.Cells() }

// Step advances the engine by one tick.
func (w *World) Step() { w.eng.Step() }

// Engine exposes the underlying engine.
func (w *World) Engine() *engine.Engine { return w.eng }

// Config returns a copy of the settings in effect, including HUD edits.
func (w *World) Config() *config.Config { return w.cfg.Clone() }

// Reset reseeds the grid and zeroes the tick counter. A zero seed falls
// back to the configured one.
func (w *World) Reset(seedValue int64) {
	effective := seedValue
	if effective == 0 {
		effective = w.cfg.Seed.Value
	}
	w.seeder(w.eng.Grid(), effective, w.cfg.SeedOptions())
	w.eng.ResetTicks()
}

// Parameters reports the world, activation and kernel settings for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	weights := make([]core.Parameter, 0, len(w.cfg.Kernel.Weights))
	for i, v := range w.cfg.Kernel.Weights {
		weights = append(weights, floatParam(weightKey(i), w.weightLabel(i), v))
	}
	act := w.cfg.Activation.Name
	if w.cfg.Activation.Expr != "" {
		act = w.cfg.Activation.Expr
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Grid.Width),
				intParam("h", "Height", w.cfg.Grid.Height),
				int64Param("seed", "Seed", w.cfg.Seed.Value),
				stringParam("seeder", "Seeder", w.cfg.Seed.Seeder),
				stringParam("wrap", "Wrap", w.eng.Wrap().String()),
			},
		},
		{
			Name: "Activation",
			Params: []core.Parameter{
				stringParam("activation", "Function", act),
			},
		},
		{
			Name:   "Kernel",
			Params: append([]core.Parameter{intParam("radius", "Radius", w.cfg.Kernel.Radius)}, weights...),
		},
	}}
}

// ParameterControls exposes every kernel weight plus the seed on the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{{
		Key:    "seed",
		Label:  "Seed",
		Type:   core.ParamTypeInt,
		Step:   1,
		Min:    1,
		HasMin: true,
	}}
	for i := range w.cfg.Kernel.Weights {
		controls = append(controls, core.ParameterControl{
			Key:    weightKey(i),
			Label:  w.weightLabel(i),
			Type:   core.ParamTypeFloat,
			Step:   0.01,
			Min:    -1,
			Max:    1,
			HasMin: true,
			HasMax: true,
		})
	}
	return controls
}

// SetFloatParameter updates one kernel weight. The whole kernel is reloaded
// so the engine never sees a partial edit.
func (w *World) SetFloatParameter(key string, value float64) bool {
	i, ok := weightIndex(key, len(w.cfg.Kernel.Weights))
	if !ok {
		return false
	}
	if value < -1 {
		value = -1
	} else if value > 1 {
		value = 1
	}
	next := append([]float32(nil), w.cfg.Kernel.Weights...)
	next[i] = float32(value)
	if err := w.eng.LoadFilter(w.cfg.Kernel.Radius, next); err != nil {
		return false
	}
	w.cfg.Kernel.Weights = next
	return true
}

// SetSeed makes v the configured seed and reseeds the grid with it. Zero
// keeps the current seed.
func (w *World) SetSeed(v int64) {
	if v != 0 {
		w.cfg.Seed.Value = v
	}
	w.Reset(0)
}

// SetIntParameter changes the seed and reseeds the grid.
func (w *World) SetIntParameter(key string, value int) bool {
	if key != "seed" || value < 1 {
		return false
	}
	w.SetSeed(int64(value))
	return true
}

func weightKey(i int) string { return "w" + strconv.Itoa(i) }

func weightIndex(key string, n int) (int, bool) {
	if len(key) < 2 || key[0] != 'w' {
		return 0, false
	}
	i, err := strconv.Atoi(key[1:])
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// weightLabel names a weight by its offset, e.g. "w(-1,0)".
func (w *World) weightLabel(i int) string {
	span := 2*w.cfg.Kernel.Radius + 1
	di := i%span - w.cfg.Kernel.Radius
	dj := i/span - w.cfg.Kernel.Radius
	return "w(" + strconv.Itoa(di) + "," + strconv.Itoa(dj) + ")"
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float32) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(float64(value), 'f', -1, 32)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}
