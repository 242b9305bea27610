package ui

import (
	"strings"
	"testing"

	"github.com/jon5th5n/neuralcellularautomata/internal/core"
	"github.com/jon5th5n/neuralcellularautomata/internal/telemetry"
)

type fakeSim struct {
	ints   map[string]int
	floats map[string]float64
}

func (f *fakeSim) SetIntParameter(key string, v int) bool {
	if _, ok := f.ints[key]; !ok {
		return false
	}
	f.ints[key] = v
	return true
}

func (f *fakeSim) SetFloatParameter(key string, v float64) bool {
	if _, ok := f.floats[key]; !ok {
		return false
	}
	f.floats[key] = v
	return true
}

var (
	weightControl = core.ParameterControl{Key: "w0", Label: "w(-1,-1)", Type: core.ParamTypeFloat, Step: 0.01, Min: -1, Max: 1, HasMin: true, HasMax: true}
	seedControl   = core.ParameterControl{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true}
)

func TestNextValueClampsToBounds(t *testing.T) {
	if v, ok := nextValue(weightControl, 0.5, 1); !ok || v < 0.5099 || v > 0.5101 {
		t.Fatalf("step up = %v, %v", v, ok)
	}
	if v, ok := nextValue(weightControl, 0.995, 1); !ok || v != 1 {
		t.Fatalf("step past max = %v, %v", v, ok)
	}
	if _, ok := nextValue(weightControl, 1, 1); ok {
		t.Fatal("step at max should not move")
	}
	if _, ok := nextValue(seedControl, 1, -1); ok {
		t.Fatal("seed below min should not move")
	}
	if v, ok := nextValue(seedControl, 4, 1); !ok || v != 5 {
		t.Fatalf("seed step = %v, %v", v, ok)
	}
}

func TestRefreshAndApply(t *testing.T) {
	sim := &fakeSim{ints: map[string]int{"seed": 3}, floats: map[string]float64{"w0": 0.5}}
	states := newControlStates([]core.ParameterControl{seedControl, weightControl, {Key: "missing", Type: core.ParamTypeFloat}}, 200, 40)
	snapshot := core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Kernel",
		Params: []core.Parameter{
			{Key: "seed", Type: core.ParamTypeInt, Value: "3"},
			{Key: "w0", Type: core.ParamTypeFloat, Value: "0.5"},
		},
	}}}
	refresh(states, snapshot)

	if !states[0].hasValue || states[0].value != "3" {
		t.Fatalf("seed state = %+v", states[0])
	}
	if states[1].value != "0.50" {
		t.Fatalf("weight shown as %q", states[1].value)
	}
	if states[2].hasValue {
		t.Fatal("missing parameter should have no value")
	}

	if !apply(&states[0], 1, sim, sim) || sim.ints["seed"] != 4 {
		t.Fatalf("seed not incremented: %v", sim.ints)
	}
	if !apply(&states[1], -1, sim, sim) || sim.floats["w0"] < 0.489 || sim.floats["w0"] > 0.491 {
		t.Fatalf("weight not decremented: %v", sim.floats)
	}
	if apply(&states[2], 1, sim, sim) {
		t.Fatal("apply succeeded without a value")
	}
	if apply(&states[1], 1, sim, nil) {
		t.Fatal("apply succeeded without a float setter")
	}
}

func TestControlLayout(t *testing.T) {
	states := newControlStates([]core.ParameterControl{seedControl, weightControl}, 200, 40)
	if states[1].top != 40+lineHeight {
		t.Fatalf("second row top = %d", states[1].top)
	}
	s := states[0]
	if s.plusRect.Max.X != 200-panelPadding || s.minusRect.Max.X >= s.plusRect.Min.X {
		t.Fatalf("buttons misplaced: %v %v", s.minusRect, s.plusRect)
	}
	mid := s.plusRect.Min.Add(s.plusRect.Size().Div(2))
	if !pointInRect(mid.X, mid.Y, s.plusRect) || pointInRect(mid.X, mid.Y, s.minusRect) {
		t.Fatal("hit test failed")
	}
}

func TestActivityMask(t *testing.T) {
	prev := []float32{0, 0.5, 1}
	cur := []float32{0.1, 0.5, 0}
	mask := make([]float32, 3)
	activity(mask, cur, prev, activityGain)

	if mask[0] < 0.399 || mask[0] > 0.401 || mask[1] != 0 || mask[2] != 1 {
		t.Fatalf("mask = %v", mask)
	}
	if prev[0] != 0.1 || prev[2] != 0 {
		t.Fatalf("prev not updated: %v", prev)
	}
}

func TestStatusLines(t *testing.T) {
	lines := Status{Tick: 12, FPS: 59.94, Paused: true, Stats: telemetry.Sample{Mean: 0.25, Active: 0.5}}.Lines()
	if len(lines) != statusLines {
		t.Fatalf("%d lines, want %d", len(lines), statusLines)
	}
	if !strings.Contains(lines[0], "tick 12") || !strings.Contains(lines[0], "paused") {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if lines[3] != "active 50.0%" {
		t.Fatalf("line 3 = %q", lines[3])
	}
}
