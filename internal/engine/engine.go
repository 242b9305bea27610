// Package engine advances a continuous cellular automaton: every step each
// cell becomes clamp(activation(Σ kernel·neighborhood), 0, 1), computed from a
// snapshot of the previous generation.
package engine

import (
	"github.com/jon5th5n/neuralcellularautomata/internal/activation"
	"github.com/jon5th5n/neuralcellularautomata/internal/core"
	"github.com/jon5th5n/neuralcellularautomata/internal/kernel"
)

// Engine owns one grid, one kernel and the activation applied to them.
// It is not safe for concurrent use.
type Engine struct {
	grid       *core.Grid
	kernel     *kernel.Kernel
	activation activation.Func

	opts  options
	prev  []float32
	bands *bandPool
	fft   *spectral
	ticks uint64
}

// New creates an engine with a zeroed width×height grid and the default
// all-zero radius-1 kernel. A nil activation behaves as identity.
func New(width, height int, act activation.Func, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if act == nil {
		act = activation.Identity
	}
	g := core.NewGrid(width, height)
	e := &Engine{
		grid:       g,
		kernel:     kernel.New(),
		activation: act,
		opts:       o,
		prev:       make([]float32, len(g.Cells())),
	}
	if o.fft {
		e.opts.wrap = WrapTorus
		e.fft = newSpectral(g.W, g.H)
		e.fft.setKernel(e.kernel)
	}
	if o.workers > 1 && !o.fft {
		e.bands = newBandPool(g.H, o.workers)
	}
	return e
}

// LoadFilter replaces the kernel. On a weight count mismatch the error wraps
// kernel.ErrInvalidKernelSize and the current kernel stays in place.
func (e *Engine) LoadFilter(radius int, weights []float32) error {
	next := kernel.New()
	if err := next.Load(radius, weights); err != nil {
		return err
	}
	e.kernel = next
	if e.fft != nil {
		e.fft.setKernel(next)
	}
	return nil
}

// SetActivation replaces the activation function. Nil means identity.
func (e *Engine) SetActivation(act activation.Func) {
	if act == nil {
		act = activation.Identity
	}
	e.activation = act
}

// Grid returns the live grid, for seeding through Set.
func (e *Engine) Grid() *core.Grid { return e.grid }

// Kernel returns a copy of the current kernel.
func (e *Engine) Kernel() *kernel.Kernel { return e.kernel.Clone() }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return e.grid.Size() }

// Cells exposes the live row-major cell values for renderers. Callers must
// not write through it.
func (e *Engine) Cells() []float32 { return e.grid.Cells() }

// Snapshot returns a row-major copy of the grid.
func (e *Engine) Snapshot() []float32 { return e.grid.Snapshot() }

// GridSnapshot returns a copy of the grid indexed as [x][y].
func (e *Engine) GridSnapshot() [][]float32 { return e.grid.Columns() }

// Ticks reports how many steps have run since construction or ResetTicks.
func (e *Engine) Ticks() uint64 { return e.ticks }

// ResetTicks zeroes the step counter.
func (e *Engine) ResetTicks() { e.ticks = 0 }

// Wrap reports the boundary policy in effect.
func (e *Engine) Wrap() Wrap { return e.opts.wrap }

// Step advances the simulation by one tick. All neighborhood reads use the
// state from before the step, so the update is simultaneous across cells.
func (e *Engine) Step() {
	copy(e.prev, e.grid.Cells())
	switch {
	case e.fft != nil:
		e.fft.step(e.prev, e.grid.Cells(), e.activation)
	case e.bands != nil:
		e.bands.run(func(y0, y1 int) { e.stepRows(y0, y1) })
	default:
		e.stepRows(0, e.grid.H)
	}
	e.ticks++
}

func (e *Engine) stepRows(y0, y1 int) {
	w, h := e.grid.W, e.grid.H
	r := e.kernel.Radius()
	span := e.kernel.Span()
	weights := e.kernel.Weights()
	wrap := e.opts.wrap.fn()
	src := e.prev
	dst := e.grid.Cells()
	act := e.activation

	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			var accum float32
			for i := 0; i < span; i++ {
				nx := wrap(x+i-r, w)
				for j := 0; j < span; j++ {
					ny := wrap(y+j-r, h)
					// The explicit conversion stops the compiler fusing into an FMA.
					accum += float32(src[ny*w+nx] * weights[i+j*span])
				}
			}
			dst[y*w+x] = Clamp01(act(accum))
		}
	}
}

// Clamp01 limits v to [0, 1]. NaN maps to 0, +Inf to 1 and -Inf to 0.
func Clamp01(v float32) float32 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
