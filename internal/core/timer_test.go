package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFrameTimerRollingAverage(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	ft := NewFrameTimer(3)
	ft.now = clock.now

	if d := ft.Tick(); d != 0 {
		t.Fatalf("first tick = %v, want 0", d)
	}
	for _, ms := range []int{10, 20, 30} {
		clock.advance(time.Duration(ms) * time.Millisecond)
		ft.Tick()
	}
	if got := ft.Average(); got != 20*time.Millisecond {
		t.Fatalf("average = %v, want 20ms", got)
	}

	// The oldest delta (10ms) falls out of the window.
	clock.advance(40 * time.Millisecond)
	ft.Tick()
	if got := ft.Average(); got != 30*time.Millisecond {
		t.Fatalf("average after wrap = %v, want 30ms", got)
	}
	if fps := ft.FPS(); fps < 33.3 || fps > 33.4 {
		t.Fatalf("fps = %f, want ~33.3", fps)
	}
}

func TestFrameTimerEmpty(t *testing.T) {
	ft := NewFrameTimer(0)
	if len(ft.deltas) != DefaultFrameWindow {
		t.Fatalf("window = %d, want %d", len(ft.deltas), DefaultFrameWindow)
	}
	if ft.Average() != 0 || ft.FPS() != 0 {
		t.Fatal("empty timer should report zero")
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	fs := NewFixedStep(10)
	fs.now = clock.now

	// A fresh controller owes one tick immediately.
	if !fs.ShouldStep() {
		t.Fatal("expected initial step")
	}
	clock.advance(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("stepped before interval elapsed")
	}
	clock.advance(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected step after interval")
	}
	if fs.Interval() != 100*time.Millisecond {
		t.Fatalf("interval = %v", fs.Interval())
	}
}

func TestFixedStepRestartDropsBacklog(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	fs := NewFixedStep(10)
	fs.now = clock.now
	fs.ShouldStep()

	clock.advance(time.Second)
	fs.Restart()
	if fs.ShouldStep() {
		t.Fatal("stepped right after restart")
	}
	clock.advance(100 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected step one interval after restart")
	}
	if fs.ShouldStep() {
		t.Fatal("backlog survived restart")
	}
}

func TestRegistryLookup(t *testing.T) {
	Register("test-only", func(map[string]string) (Sim, error) { return nil, nil })
	t.Cleanup(func() { delete(sims, "test-only") })

	if _, err := NewSim("test-only", nil); err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	if _, err := NewSim("missing", nil); err == nil {
		t.Fatal("expected error for unknown sim")
	}
	found := false
	for _, name := range SimNames() {
		if name == "test-only" {
			found = true
		}
	}
	if !found {
		t.Fatal("SimNames missing registered sim")
	}
}
