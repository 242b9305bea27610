package core

import "fmt"

// Grid stores a 2D grid of float32 cell values in row-major order.
type Grid struct {
	W, H int
	data []float32
}

// NewGrid allocates a grid with the given dimensions. Every cell starts at 0.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]float32, w*h)}
}

// Size reports the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so renderers can read values without a copy.
func (g *Grid) Cells() []float32 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Get returns the value at (x, y). Coordinates outside the grid panic.
func (g *Grid) Get(x, y int) float32 {
	g.mustContain(x, y)
	return g.data[y*g.W+x]
}

// Set overwrites the value at (x, y) without clamping. Coordinates outside
// the grid panic.
func (g *Grid) Set(x, y int, v float32) {
	g.mustContain(x, y)
	g.data[y*g.W+x] = v
}

// Snapshot returns an independent row-major copy of the grid.
func (g *Grid) Snapshot() []float32 {
	out := make([]float32, len(g.data))
	copy(out, g.data)
	return out
}

// Columns returns an independent copy indexed as cols[x][y].
func (g *Grid) Columns() [][]float32 {
	cols := make([][]float32, g.W)
	for x := range cols {
		col := make([]float32, g.H)
		for y := range col {
			col[y] = g.data[y*g.W+x]
		}
		cols[x] = col
	}
	return cols
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, data: g.Snapshot()}
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Fill sets every cell to v.
func (g *Grid) Fill(v float32) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() { g.Fill(0) }

func (g *Grid) mustContain(x, y int) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		panic(fmt.Sprintf("core: cell (%d,%d) outside %dx%d grid", x, y, g.W, g.H))
	}
}
