package ui

import (
	"image"
	"math"
	"strconv"

	"github.com/jon5th5n/neuralcellularautomata/internal/core"
)

type controlState struct {
	control core.ParameterControl
	value   string

	current  float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// newControlStates lays the controls out top to bottom inside a panel of
// the given width, starting at y = top.
func newControlStates(controls []core.ParameterControl, width, top int) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
		if width <= 0 {
			continue
		}
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = rowTop
		states[i].minusRect = minus
		states[i].plusRect = plus
	}
	return states
}

// refresh copies current values out of the snapshot.
func refresh(states []controlState, snapshot core.ParameterSnapshot) {
	for i := range states {
		s := &states[i]
		s.hasValue = false
		s.value = "--"
		param, ok := snapshot.Lookup(s.control.Key)
		if !ok || param.Type != s.control.Type {
			continue
		}
		switch s.control.Type {
		case core.ParamTypeInt:
			v, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			s.current = float64(v)
			s.value = strconv.Itoa(v)
		case core.ParamTypeFloat:
			v, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			s.current = v
			s.value = formatFloat(s.control, v)
		default:
			continue
		}
		s.hasValue = true
	}
}

// nextValue is the value one step away from current in direction, clamped
// to the control's bounds. It reports false when the step would not move.
func nextValue(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	switch {
	case ctrl.Type == core.ParamTypeInt:
		step = math.Max(1, math.Round(step))
	case step <= 0:
		step = 0.05
	}
	target := ctrl.Clamp(current + float64(direction)*step)
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

// apply sends an adjustment to the matching setter and updates the state on
// success.
func apply(s *controlState, direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	if !s.hasValue {
		return false
	}
	target, ok := nextValue(s.control, s.current, direction)
	if !ok {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		if ints == nil || !ints.SetIntParameter(s.control.Key, int(target)) {
			return false
		}
		s.value = strconv.Itoa(int(target))
	case core.ParamTypeFloat:
		if floats == nil || !floats.SetFloatParameter(s.control.Key, target) {
			return false
		}
		s.value = formatFloat(s.control, target)
	default:
		return false
	}
	s.current = target
	return true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 24
	buttonSize     = 18
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 16
	statusLines    = 4
	statusHeight   = 16
)
