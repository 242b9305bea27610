// Package kernel holds the square weight matrix applied to every cell's
// neighborhood during a step.
package kernel

import (
	"errors"
	"fmt"
)

// ErrInvalidKernelSize reports a weight count that does not match (2r+1)².
var ErrInvalidKernelSize = errors.New("invalid kernel size")

// Kernel is an odd-sized square of weights in [-1, 1] centered on a cell.
//
// Weights are stored in load order: index i = di + dj*span, where di is the
// x offset shifted by the radius and varies fastest.
type Kernel struct {
	radius  int
	weights []float32
}

// New returns the default kernel: radius 1 with all weights zero.
func New() *Kernel {
	return &Kernel{radius: 1, weights: make([]float32, 9)}
}

// FromWeights builds a kernel from a flat weight list.
func FromWeights(radius int, weights []float32) (*Kernel, error) {
	k := &Kernel{}
	if err := k.Load(radius, weights); err != nil {
		return nil, err
	}
	return k, nil
}

// Load replaces the kernel wholesale. Each weight is clamped to [-1, 1]. A
// weight count other than (2*radius+1)² leaves the kernel untouched and
// returns an error wrapping ErrInvalidKernelSize.
func (k *Kernel) Load(radius int, weights []float32) error {
	if radius < 0 {
		return fmt.Errorf("%w: negative radius %d", ErrInvalidKernelSize, radius)
	}
	span := 2*radius + 1
	if len(weights) != span*span {
		return fmt.Errorf("%w: radius %d needs %d weights, got %d", ErrInvalidKernelSize, radius, span*span, len(weights))
	}
	next := make([]float32, len(weights))
	for i, w := range weights {
		next[i] = clampWeight(w)
	}
	k.radius = radius
	k.weights = next
	return nil
}

// Radius returns the half-width of the kernel excluding the center.
func (k *Kernel) Radius() int { return k.radius }

// Span returns the side length, 2*radius+1.
func (k *Kernel) Span() int { return 2*k.radius + 1 }

// Weight returns the weight applied to the neighbor at offset (di, dj).
// Offsets must lie in [-radius, radius].
func (k *Kernel) Weight(di, dj int) float32 {
	return k.weights[(di+k.radius)+(dj+k.radius)*k.Span()]
}

// Weights returns a copy of the weights in load order.
func (k *Kernel) Weights() []float32 {
	out := make([]float32, len(k.weights))
	copy(out, k.weights)
	return out
}

// Clone returns a deep copy of the kernel.
func (k *Kernel) Clone() *Kernel {
	return &Kernel{radius: k.radius, weights: k.Weights()}
}

// clampWeight maps NaN to zero so a malformed weight cannot poison every sum.
func clampWeight(w float32) float32 {
	switch {
	case w != w:
		return 0
	case w < -1:
		return -1
	case w > 1:
		return 1
	}
	return w
}
