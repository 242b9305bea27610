package render

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestFillScalarRGBA(t *testing.T) {
	tint := color.RGBA{R: 104, G: 212, B: 134, A: 255}
	cells := []float32{0, 0.5, 1, 1.5, -1, float32(math.NaN())}
	buf := make([]byte, 4*len(cells))
	fillScalarRGBA(buf, cells, tint)

	want := [][4]byte{
		{0, 0, 0, 255},
		{52, 106, 67, 255},
		{104, 212, 134, 255},
		{104, 212, 134, 255},
		{0, 0, 0, 255},
		{0, 0, 0, 255},
	}
	for i, w := range want {
		got := [4]byte{buf[i*4], buf[i*4+1], buf[i*4+2], buf[i*4+3]}
		if got != w {
			t.Fatalf("pixel %d = %v, want %v", i, got, w)
		}
	}
}

func TestFillMaskRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillMaskRGBA(buf, []float32{0, 1}, color.RGBA{R: 255, G: 100, A: 200})
	if buf[3] != 0 || buf[0] != 0 {
		t.Fatalf("empty mask pixel = %v", buf[:4])
	}
	if buf[7] != 200 || buf[4] != 200 || buf[5] != 78 {
		t.Fatalf("full mask pixel = %v", buf[4:])
	}
}

func TestTintFromRGB(t *testing.T) {
	if got := TintFromRGB([]int{1, 300, -4}); got != (color.RGBA{R: 1, G: 255, B: 0, A: 255}) {
		t.Fatalf("TintFromRGB = %v", got)
	}
	if got := TintFromRGB(nil); got != DefaultTint {
		t.Fatalf("TintFromRGB(nil) = %v", got)
	}
}

func TestImageOrientation(t *testing.T) {
	// Row-major: cell (2,0) is index 2, cell (0,1) is index 3.
	cells := []float32{0, 0, 1, 0.5, 0, 0}
	img, err := Image(cells, 3, 2, DefaultTint)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.RGBAAt(2, 0); got != DefaultTint {
		t.Fatalf("pixel (2,0) = %v", got)
	}
	if got := img.RGBAAt(0, 1).G; got != 106 {
		t.Fatalf("pixel (0,1) green = %d, want 106", got)
	}
	if _, err := Image(cells, 4, 2, DefaultTint); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestSavePNGScales(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, []float32{1, 0, 0, 1}, 2, 2, 3, DefaultTint); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 6x6", b)
	}
	r, _, _, _ := img.At(5, 0).RGBA()
	if r != 0 {
		t.Fatalf("pixel (5,0) red = %d, want 0", r)
	}
	r, _, _, _ = img.At(5, 5).RGBA()
	if r>>8 != 104 {
		t.Fatalf("pixel (5,5) red = %d, want 104", r>>8)
	}
}
