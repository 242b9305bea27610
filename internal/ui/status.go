package ui

import (
	"fmt"

	"github.com/jon5th5n/neuralcellularautomata/internal/telemetry"
)

// Status is the live run information shown above the controls.
type Status struct {
	Tick   uint64
	FPS    float64
	Paused bool
	Stats  telemetry.Sample
}

// Lines formats the status for the HUD, one entry per row.
func (s Status) Lines() []string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("tick %d (%s)", s.Tick, state),
		fmt.Sprintf("fps  %.1f", s.FPS),
		fmt.Sprintf("mean %.3f  sd %.3f", s.Stats.Mean, s.Stats.StdDev),
		fmt.Sprintf("active %.1f%%", 100*s.Stats.Active),
	}
}
