// Package seed fills a grid with an initial state.
package seed

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ojrac/opensimplex-go"

	"github.com/jon5th5n/neuralcellularautomata/internal/core"
)

// ErrUnknownSeeder is returned by Lookup for unregistered names.
var ErrUnknownSeeder = errors.New("seed: unknown seeder")

// Target is anything with a writable 2D cell array, typically *core.Grid.
type Target interface {
	Size() core.Size
	Set(x, y int, v float32)
}

// Options tunes the seeders that take parameters. Zero values fall back to
// the defaults below.
type Options struct {
	// Density is the fraction of live cells for "sparse".
	Density float64
	// Scale is the base frequency of "noise" in cycles per cell.
	Scale float64
	// Octaves is the number of noise layers summed by "noise".
	Octaves int
}

const (
	DefaultDensity = 0.2
	DefaultScale   = 0.02
	DefaultOctaves = 3
)

func (o Options) withDefaults() Options {
	if o.Density <= 0 {
		o.Density = DefaultDensity
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Octaves <= 0 {
		o.Octaves = DefaultOctaves
	}
	return o
}

// Seeder writes every cell of t. Equal seeds give equal states.
type Seeder func(t Target, seed int64, opts Options)

var seeders = map[string]Seeder{
	"uniform": Uniform,
	"noise":   Noise,
	"sparse":  Sparse,
	"zero":    Zero,
}

// Lookup returns the named seeder.
func Lookup(name string) (Seeder, error) {
	s, ok := seeders[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSeeder, name)
	}
	return s, nil
}

// Names lists the seeders in sorted order.
func Names() []string {
	names := make([]string, 0, len(seeders))
	for name := range seeders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fill(t Target, fn func(x, y int) float32) {
	size := t.Size()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			t.Set(x, y, fn(x, y))
		}
	}
}

// Uniform draws every cell independently from [0, 1).
func Uniform(t Target, seed int64, _ Options) {
	rng := NewRNG(seed)
	fill(t, func(int, int) float32 { return rng.Float32() })
}

// Sparse sets a Density fraction of cells to 1 and the rest to 0.
func Sparse(t Target, seed int64, opts Options) {
	opts = opts.withDefaults()
	rng := NewRNG(seed)
	fill(t, func(int, int) float32 {
		if rng.Chance(opts.Density) {
			return 1
		}
		return 0
	})
}

// Zero clears every cell.
func Zero(t Target, _ int64, _ Options) {
	fill(t, func(int, int) float32 { return 0 })
}

// Noise fills the grid with fractal simplex noise normalized to [0, 1].
func Noise(t Target, seed int64, opts Options) {
	opts = opts.withDefaults()
	n := opensimplex.NewNormalized(seed)
	fill(t, func(x, y int) float32 {
		var sum, norm float64
		amp, freq := 1.0, opts.Scale
		for o := 0; o < opts.Octaves; o++ {
			// Offset octaves so they do not share a lattice origin.
			off := float64(o) * 97
			sum += amp * n.Eval2(float64(x)*freq+off, float64(y)*freq+off)
			norm += amp
			freq *= 2
			amp *= 0.5
		}
		return float32(math.Min(1, math.Max(0, sum/norm)))
	})
}
