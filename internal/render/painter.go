//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one texture in sync with a continuous cell grid.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Upload shades the cells by tint into the texture without drawing it.
func (gp *GridPainter) Upload(cells []float32, tint color.RGBA) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillScalarRGBA(gp.buf, cells, tint)
	gp.img.WritePixels(gp.buf)
}

// Draw paints the last uploaded texture scaled onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// BlitMask draws mask values as a translucent tint over dst.
func (gp *GridPainter) BlitMask(dst *ebiten.Image, mask []float32, tint color.RGBA, scale int) {
	if len(mask) != gp.w*gp.h {
		return
	}
	fillMaskRGBA(gp.buf, mask, tint)
	gp.img.WritePixels(gp.buf)
	gp.Draw(dst, scale)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
