package engine

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/jon5th5n/neuralcellularautomata/internal/activation"
	"github.com/jon5th5n/neuralcellularautomata/internal/kernel"
)

// spectral computes neighborhood sums as a circular convolution in the
// frequency domain. Cost per step is O(WH log WH) regardless of radius.
type spectral struct {
	w, h   int
	rows   *fourier.CmplxFFT
	cols   *fourier.CmplxFFT
	scale  float64
	kernel []complex128
	buf    []complex128
	line   []complex128
	tmp    []complex128
}

func newSpectral(w, h int) *spectral {
	n := w
	if h > n {
		n = h
	}
	s := &spectral{
		w:      w,
		h:      h,
		rows:   fourier.NewCmplxFFT(w),
		cols:   fourier.NewCmplxFFT(h),
		kernel: make([]complex128, w*h),
		buf:    make([]complex128, w*h),
		line:   make([]complex128, n),
		tmp:    make([]complex128, n),
	}
	// Round-trip an impulse to learn the transform's scaling.
	s.scale = 1 / (roundTripGain(s.rows, w) * roundTripGain(s.cols, h))
	return s
}

func roundTripGain(t *fourier.CmplxFFT, n int) float64 {
	seq := make([]complex128, n)
	seq[0] = 1
	return real(t.Sequence(nil, t.Coefficients(nil, seq))[0])
}

// setKernel places the kernel mirrored around the origin so that the
// convolution reproduces Σ S[x+di, y+dj]·w(di, dj). Offsets that alias on
// small grids add up, which is exactly the modulo wrap.
func (s *spectral) setKernel(k *kernel.Kernel) {
	for i := range s.kernel {
		s.kernel[i] = 0
	}
	r := k.Radius()
	for dj := -r; dj <= r; dj++ {
		for di := -r; di <= r; di++ {
			x := wrapTorus(-di, s.w)
			y := wrapTorus(-dj, s.h)
			s.kernel[y*s.w+x] += complex(float64(k.Weight(di, dj)), 0)
		}
	}
	s.transform(s.kernel, false)
}

func (s *spectral) step(src, dst []float32, act activation.Func) {
	for i, v := range src {
		s.buf[i] = complex(float64(v), 0)
	}
	s.transform(s.buf, false)
	for i := range s.buf {
		s.buf[i] *= s.kernel[i]
	}
	s.transform(s.buf, true)
	for i := range dst {
		dst[i] = Clamp01(act(float32(real(s.buf[i]) * s.scale)))
	}
}

// transform runs a 2D FFT in place: every row, then every column.
func (s *spectral) transform(data []complex128, inverse bool) {
	apply := func(t *fourier.CmplxFFT, dst, src []complex128) {
		if inverse {
			t.Sequence(dst, src)
			return
		}
		t.Coefficients(dst, src)
	}

	row := s.tmp[:s.w]
	for y := 0; y < s.h; y++ {
		line := data[y*s.w : (y+1)*s.w]
		apply(s.rows, row, line)
		copy(line, row)
	}

	col := s.line[:s.h]
	out := s.tmp[:s.h]
	for x := 0; x < s.w; x++ {
		for y := 0; y < s.h; y++ {
			col[y] = data[y*s.w+x]
		}
		apply(s.cols, out, col)
		for y := 0; y < s.h; y++ {
			data[y*s.w+x] = out[y]
		}
	}
}
