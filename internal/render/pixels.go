package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// DefaultTint is the color of a fully active cell.
var DefaultTint = color.RGBA{R: 104, G: 212, B: 134, A: 255}

// TintFromRGB builds an opaque tint from a three-channel slice. Missing or
// malformed input yields DefaultTint.
func TintFromRGB(rgb []int) color.RGBA {
	if len(rgb) != 3 {
		return DefaultTint
	}
	ch := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.RGBA{R: ch(rgb[0]), G: ch(rgb[1]), B: ch(rgb[2]), A: 255}
}

// shade scales one channel by a cell value, truncating toward zero.
func shade(c uint8, v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return c
	}
	return uint8(float32(c) * v)
}

// fillScalarRGBA converts continuous cell values into opaque RGBA pixels in
// buf, each channel being tint·value.
func fillScalarRGBA(buf []byte, cells []float32, tint color.RGBA) {
	for i, v := range cells {
		base := i * 4
		buf[base+0] = shade(tint.R, v)
		buf[base+1] = shade(tint.G, v)
		buf[base+2] = shade(tint.B, v)
		buf[base+3] = 255
	}
}

// fillMaskRGBA writes the tint with alpha proportional to each mask value,
// for translucent overlays.
func fillMaskRGBA(buf []byte, mask []float32, tint color.RGBA) {
	for i, v := range mask {
		base := i * 4
		a := shade(tint.A, v)
		// Premultiplied alpha.
		buf[base+0] = uint8(uint16(tint.R) * uint16(a) / 255)
		buf[base+1] = uint8(uint16(tint.G) * uint16(a) / 255)
		buf[base+2] = uint8(uint16(tint.B) * uint16(a) / 255)
		buf[base+3] = a
	}
}

// Image renders a row-major w×h grid into a new RGBA image.
func Image(cells []float32, w, h int, tint color.RGBA) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("render: %d cells do not fill a %dx%d image", len(cells), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillScalarRGBA(img.Pix, cells, tint)
	return img, nil
}

// SavePNG renders the grid and writes it to path, scaling each cell to a
// scale×scale block.
func SavePNG(path string, cells []float32, w, h, scale int, tint color.RGBA) error {
	img, err := Image(cells, w, h, tint)
	if err != nil {
		return err
	}
	if scale > 1 {
		img = upscale(img, scale)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func upscale(src *image.RGBA, scale int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			si := src.PixOffset(x/scale, y/scale)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
