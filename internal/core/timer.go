package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Restart forgets elapsed time, e.g. after a pause, so the next ticks do
// not arrive as a burst.
func (f *FixedStep) Restart() {
	f.last = time.Time{}
	f.accumulator = 0
}

// DefaultFrameWindow is the number of frame deltas averaged by FrameTimer.
const DefaultFrameWindow = 10

// FrameTimer keeps a rolling average of the time between frames.
type FrameTimer struct {
	deltas []time.Duration
	next   int
	filled int
	last   time.Time
	now    func() time.Time
}

// NewFrameTimer returns a timer averaging over the last window frames.
func NewFrameTimer(window int) *FrameTimer {
	if window <= 0 {
		window = DefaultFrameWindow
	}
	return &FrameTimer{deltas: make([]time.Duration, window), now: time.Now}
}

// Tick records the end of a frame and returns the time since the previous one.
func (t *FrameTimer) Tick() time.Duration {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	delta := now.Sub(t.last)
	t.last = now
	t.deltas[t.next] = delta
	t.next = (t.next + 1) % len(t.deltas)
	if t.filled < len(t.deltas) {
		t.filled++
	}
	return delta
}

// Average returns the mean frame delta over the recorded window.
func (t *FrameTimer) Average() time.Duration {
	if t.filled == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < t.filled; i++ {
		total += t.deltas[i]
	}
	return total / time.Duration(t.filled)
}

// FPS converts the average frame delta into frames per second.
func (t *FrameTimer) FPS() float64 {
	avg := t.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
