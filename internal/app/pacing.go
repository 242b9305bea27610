package app

// renderGate lets every Nth step through so the texture is refreshed less
// often than the simulation advances.
type renderGate struct {
	every int
	count int
}

func newRenderGate(every int) *renderGate {
	if every < 1 {
		every = 1
	}
	return &renderGate{every: every}
}

// Step records one simulation step and reports whether to redraw.
func (g *renderGate) Step() bool {
	g.count++
	if g.count >= g.every {
		g.count = 0
		return true
	}
	return false
}

// Force makes the next Step report true.
func (g *renderGate) Force() { g.count = g.every - 1 }
