package engine

import "sync"

// minBandRows is the fewest rows worth handing to a goroutine. Smaller bands
// cost more in scheduling than they save.
const minBandRows = 16

type band struct{ y0, y1 int }

// bandPool splits the rows of a grid into contiguous bands, one per worker.
type bandPool struct {
	bands []band
	wg    sync.WaitGroup
}

// newBandPool returns nil when the grid is too small to split.
func newBandPool(rows, workers int) *bandPool {
	n := workers
	if limit := rows / minBandRows; n > limit {
		n = limit
	}
	if n <= 1 {
		return nil
	}
	p := &bandPool{bands: make([]band, n)}
	per := rows / n
	extra := rows % n
	y := 0
	for i := range p.bands {
		size := per
		if i < extra {
			size++
		}
		p.bands[i] = band{y0: y, y1: y + size}
		y += size
	}
	return p
}

// run calls fn once per band concurrently and waits for all of them.
func (p *bandPool) run(fn func(y0, y1 int)) {
	p.wg.Add(len(p.bands))
	for _, b := range p.bands {
		go func(b band) {
			defer p.wg.Done()
			fn(b.y0, b.y1)
		}(b)
	}
	p.wg.Wait()
}
