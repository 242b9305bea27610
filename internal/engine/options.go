package engine

import "fmt"

// Wrap selects how neighbor coordinates past an edge are folded back.
type Wrap int

const (
	// WrapSingle folds one step: v < 0 becomes N-1 and v >= N becomes 0.
	// It is exact for radius 1; for larger radii every out-of-range offset
	// collapses onto the opposite edge cell.
	WrapSingle Wrap = iota
	// WrapTorus folds with a true modulo, exact for any radius.
	WrapTorus
)

func (w Wrap) String() string {
	switch w {
	case WrapSingle:
		return "single"
	case WrapTorus:
		return "torus"
	default:
		return fmt.Sprintf("Wrap(%d)", int(w))
	}
}

// ParseWrap converts "single" or "torus" into a Wrap.
func ParseWrap(s string) (Wrap, error) {
	switch s {
	case "", "single":
		return WrapSingle, nil
	case "torus":
		return WrapTorus, nil
	}
	return WrapSingle, fmt.Errorf("unknown wrap %q (want single or torus)", s)
}

func (w Wrap) fn() func(v, n int) int {
	if w == WrapTorus {
		return wrapTorus
	}
	return wrapSingle
}

func wrapSingle(v, n int) int {
	if v < 0 {
		return n - 1
	}
	if v >= n {
		return 0
	}
	return v
}

func wrapTorus(v, n int) int {
	return (v%n + n) % n
}

type options struct {
	workers int
	wrap    Wrap
	fft     bool
}

func defaultOptions() options {
	return options{workers: 1, wrap: WrapSingle}
}

// Option configures an Engine at construction.
type Option func(*options)

// WithWorkers splits each step across n goroutines by row bands. Results are
// identical to the single-threaded step; the activation must be safe for
// concurrent use.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithWrap sets the boundary policy.
func WithWrap(w Wrap) Option {
	return func(o *options) { o.wrap = w }
}

// WithFFT computes neighborhood sums by FFT circular convolution. It implies
// WrapTorus and matches the direct step only to floating-point tolerance.
func WithFFT() Option {
	return func(o *options) { o.fft = true }
}
