package kernel

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestNewIsZeroRadiusOne(t *testing.T) {
	k := New()
	if k.Radius() != 1 || k.Span() != 3 {
		t.Fatalf("radius/span = %d/%d, want 1/3", k.Radius(), k.Span())
	}
	w := k.Weights()
	if len(w) != 9 {
		t.Fatalf("len(weights) = %d, want 9", len(w))
	}
	for i, v := range w {
		if v != 0 {
			t.Fatalf("weight %d = %f, want 0", i, v)
		}
	}
}

func TestLoadClampsWeights(t *testing.T) {
	k := New()
	err := k.Load(1, []float32{
		-3, -1, -0.5,
		0, 0.25, 1,
		1.5, float32(math.Inf(1)), float32(math.NaN()),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []float32{-1, -1, -0.5, 0, 0.25, 1, 1, 1, 0}
	if got := k.Weights(); !slices.Equal(got, want) {
		t.Fatalf("weights = %v, want %v", got, want)
	}
}

func TestWeightOrderingIsXFastest(t *testing.T) {
	weights := make([]float32, 9)
	for i := range weights {
		weights[i] = float32(i) / 10
	}
	k, err := FromWeights(1, weights)
	if err != nil {
		t.Fatalf("FromWeights: %v", err)
	}
	// i = (di+1) + (dj+1)*3
	cases := []struct {
		di, dj int
		want   float32
	}{
		{-1, -1, 0},
		{1, -1, 0.2},
		{-1, 0, 0.3},
		{0, 0, 0.4},
		{-1, 1, 0.6},
		{1, 1, 0.8},
	}
	for _, tc := range cases {
		if got := k.Weight(tc.di, tc.dj); got != tc.want {
			t.Fatalf("Weight(%d,%d) = %f, want %f", tc.di, tc.dj, got, tc.want)
		}
	}
}

func TestLoadRejectsMismatchedCount(t *testing.T) {
	k := New()
	if err := k.Load(1, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before := k.Weights()

	cases := []struct {
		radius int
		n      int
	}{
		{1, 8},
		{1, 10},
		{2, 9},
		{0, 0},
		{-1, 1},
	}
	for _, tc := range cases {
		err := k.Load(tc.radius, make([]float32, tc.n))
		if !errors.Is(err, ErrInvalidKernelSize) {
			t.Fatalf("Load(%d, %d weights) err = %v, want ErrInvalidKernelSize", tc.radius, tc.n, err)
		}
	}
	if k.Radius() != 1 || !slices.Equal(k.Weights(), before) {
		t.Fatal("failed load modified the kernel")
	}
}

func TestRadiusZeroAndTwo(t *testing.T) {
	k, err := FromWeights(0, []float32{0.5})
	if err != nil {
		t.Fatalf("radius 0: %v", err)
	}
	if k.Span() != 1 || k.Weight(0, 0) != 0.5 {
		t.Fatalf("radius 0 kernel = span %d weight %f", k.Span(), k.Weight(0, 0))
	}

	k, err = FromWeights(2, make([]float32, 25))
	if err != nil {
		t.Fatalf("radius 2: %v", err)
	}
	if k.Span() != 5 {
		t.Fatalf("span = %d, want 5", k.Span())
	}
}

func TestWeightsAndCloneAreCopies(t *testing.T) {
	k, _ := FromWeights(0, []float32{0.5})
	w := k.Weights()
	w[0] = -1
	if k.Weight(0, 0) != 0.5 {
		t.Fatal("Weights exposed internal storage")
	}
	c := k.Clone()
	if err := c.Load(0, []float32{0.1}); err != nil {
		t.Fatal(err)
	}
	if k.Weight(0, 0) != 0.5 {
		t.Fatal("clone shares storage")
	}
}
