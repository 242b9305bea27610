package activation

import "math"

func registerBuiltins() {
	MustRegister("identity", Identity)
	MustRegister("relu", func(x float32) float32 {
		if x < 0 {
			return 0
		}
		return x
	})
	MustRegister("tanh", func(x float32) float32 {
		return float32(math.Tanh(float64(x)))
	})
	MustRegister("sigmoid", func(x float32) float32 {
		return float32(1 / (1 + math.Exp(-float64(x))))
	})
	MustRegister("waves", Waves)
	MustRegister("worms", Worms)
	MustRegister("slime", func(x float32) float32 {
		return inverseQuadratic(x, 0.89)
	})
	MustRegister("mitosis", func(x float32) float32 {
		return inverseQuadratic(x, 0.9)
	})
	MustRegister("pathways", func(x float32) float32 {
		d := float64(x) - 3.5
		return float32(math.Pow(2, -d*d))
	})
	MustRegister("life", Life)
}

// Waves is |1.2x|, computed in float32.
func Waves(x float32) float32 {
	v := float32(1.2) * x
	if v < 0 {
		v = -v
	}
	return v
}

// Worms is the inverted gaussian 1 - 2^(-0.6x²). The exponent is computed
// in float32; only the power itself goes through float64.
func Worms(x float32) float32 {
	e := float32(0.6) * float32(x*x)
	return -1/float32(math.Pow(2, float64(e))) + 1
}

func inverseQuadratic(x float32, k float64) float32 {
	v := float64(x)
	return float32(-1/(k*v*v+1) + 1)
}

// Life implements Conway's rules for a kernel with 0.1 on every neighbor and
// 0.9 at the center: sums of 0.3 (birth) and 1.1 or 1.2 (survival) map to 1.
func Life(x float32) float32 {
	for _, target := range [...]float32{0.3, 1.1, 1.2} {
		d := x - target
		if d > -0.05 && d < 0.05 {
			return 1
		}
	}
	return 0
}
