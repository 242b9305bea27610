package seed

import "math/rand/v2"

// RNG wraps math/rand/v2 so that every seeder draws from the same
// deterministic PCG stream for a given seed.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float32 returns a value in [0, 1).
func (r *RNG) Float32() float32 { return r.r.Float32() }

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.r.Float64() < p
}
