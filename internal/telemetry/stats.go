// Package telemetry summarizes grid states and writes them out as CSV
// records and plots.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ActiveThreshold is the value above which a cell counts as active.
const ActiveThreshold = 0.5

// Sample is the summary of one grid state.
type Sample struct {
	Tick   uint64  `csv:"tick"`
	Mass   float64 `csv:"mass"`
	Mean   float64 `csv:"mean"`
	StdDev float64 `csv:"stddev"`
	Min    float64 `csv:"min"`
	Max    float64 `csv:"max"`
	Active float64 `csv:"active_frac"`
}

// Measure summarizes cells at the given tick. Mass is the sum of absolute
// values, which is the plain total for any grid the engine has stepped.
func Measure(tick uint64, cells []float32) Sample {
	s := Sample{Tick: tick}
	if len(cells) == 0 {
		return s
	}
	n := len(cells)
	s.Mass = float64(blas32.Asum(blas32.Vector{N: n, Inc: 1, Data: cells}))
	s.Mean = s.Mass / float64(n)

	values := make([]float64, n)
	active := 0
	for i, v := range cells {
		values[i] = float64(v)
		if v > ActiveThreshold {
			active++
		}
	}
	_, s.StdDev = stat.PopMeanStdDev(values, nil)
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Active = float64(active) / float64(n)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", s.Tick),
		slog.Float64("mass", s.Mass),
		slog.Float64("mean", s.Mean),
		slog.Float64("stddev", s.StdDev),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("active_frac", s.Active),
	)
}

// Recorder keeps every sample of a run in order.
type Recorder struct {
	samples []Sample
}

// Observe measures cells and appends the result.
func (r *Recorder) Observe(tick uint64, cells []float32) Sample {
	s := Measure(tick, cells)
	r.samples = append(r.samples, s)
	return s
}

// Samples returns the recorded samples. The slice must not be modified.
func (r *Recorder) Samples() []Sample { return r.samples }

// Last returns the most recent sample.
func (r *Recorder) Last() (Sample, bool) {
	if len(r.samples) == 0 {
		return Sample{}, false
	}
	return r.samples[len(r.samples)-1], true
}
