//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/jon5th5n/neuralcellularautomata/internal/core"
)

var (
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	buttonColor = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	idleColor   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// HUD renders run status and the parameter panel to the right of the grid.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	title    string
	status   Status
	controls []controlState

	ints   core.IntParameterSetter
	floats core.FloatParameterSetter

	panelOffsetX int
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: strings.ToUpper(sim.Name())}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		top := panelPadding + headerBaseline + statusLines*statusHeight + 14
		h.controls = newControlStates(p.ParameterControls(), width, top)
	}
	h.ints, _ = sim.(core.IntParameterSetter)
	h.floats, _ = sim.(core.FloatParameterSetter)
	return h
}

// Width returns the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the status and control values and handles clicks on
// the +/- buttons.
func (h *HUD) Update(panelOffsetX int, status Status) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.status = status
	if p, ok := h.sim.(core.ParameterProvider); ok {
		refresh(h.controls, p.Parameters())
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.panelOffsetX
	if px < 0 {
		return
	}
	for i := range h.controls {
		s := &h.controls[i]
		switch {
		case pointInRect(px, my, s.minusRect):
			apply(s, -1, h.ints, h.floats)
			return
		case pointInRect(px, my, s.plusRect):
			apply(s, 1, h.ints, h.floats)
			return
		}
	}
}

// Draw paints the panel at offsetX, as tall as the scaled grid.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	for _, line := range h.status.Lines() {
		y += statusHeight
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
	}
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y+statusHeight*2, mutedColor)
	}
	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControl(s *controlState) {
	face := basicfont.Face7x13
	baseline := s.top + labelBaseline
	text.Draw(h.panel, s.control.Label, face, panelPadding, baseline, textColor)

	valueColor := textColor
	if !s.hasValue {
		valueColor = mutedColor
	}
	valueX := s.minusRect.Min.X - buttonGap - text.BoundString(face, s.value).Dx()
	text.Draw(h.panel, s.value, face, valueX, baseline, valueColor)

	_, canDec := nextValue(s.control, s.current, -1)
	_, canInc := nextValue(s.control, s.current, 1)
	h.drawButton(s.minusRect, "-", s.hasValue && canDec)
	h.drawButton(s.plusRect, "+", s.hasValue && canInc)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := buttonColor, textColor
	if !enabled {
		bg, fg = idleColor, mutedColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// String summarizes the HUD for window titles and logs.
func (h *HUD) String() string {
	if h == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", h.title, h.status.Lines()[0])
}
