//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jon5th5n/neuralcellularautomata/internal/core"
	"github.com/jon5th5n/neuralcellularautomata/internal/render"
)

var activityTint = color.RGBA{R: 255, G: 96, B: 64, A: 220}

// Overlay highlights cells that changed since the previous frame. Press D
// to toggle it.
type Overlay struct {
	sim     core.Sim
	scale   int
	show    bool
	painter *render.GridPainter
	prev    []float32
	mask    []float32
}

// NewOverlay constructs a hidden overlay for sim.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	n := size.W * size.H
	return &Overlay{
		sim:     sim,
		scale:   scale,
		painter: render.NewGridPainter(size.W, size.H),
		prev:    append([]float32(nil), sim.Cells()...),
		mask:    make([]float32, n),
	}
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if o == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.show = !o.show
		copy(o.prev, o.sim.Cells())
	}
}

// Draw paints the change mask over screen when enabled.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.show {
		return
	}
	cells := o.sim.Cells()
	if len(cells) != len(o.prev) {
		return
	}
	activity(o.mask, cells, o.prev, activityGain)
	o.painter.BlitMask(screen, o.mask, activityTint, o.scale)
}
