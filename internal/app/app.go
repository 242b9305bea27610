//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jon5th5n/neuralcellularautomata/internal/core"
	"github.com/jon5th5n/neuralcellularautomata/internal/render"
	"github.com/jon5th5n/neuralcellularautomata/internal/sims/nca"
	"github.com/jon5th5n/neuralcellularautomata/internal/telemetry"
	"github.com/jon5th5n/neuralcellularautomata/internal/ui"
)

// maxStepsPerUpdate bounds catch-up work when the tick rate exceeds the
// frame rate.
const maxStepsPerUpdate = 8

// Game adapts an automaton world to the ebiten.Game interface.
type Game struct {
	world   *nca.World
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	gate    *renderGate
	clock   *core.FixedStep
	frames  *core.FrameTimer
	log     *slog.Logger

	tint     color.RGBA
	scale    int
	paused   bool
	tickOnce bool
	stats    telemetry.Sample
}

// New constructs a Game for the provided world.
func New(world *nca.World, hudWidth int, log *slog.Logger) *Game {
	cfg := world.Config()
	size := world.Size()
	g := &Game{
		world:   world,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(world, hudWidth),
		overlay: ui.NewOverlay(world, cfg.Display.Scale),
		gate:    newRenderGate(cfg.Display.RenderEvery),
		clock:   core.NewFixedStep(cfg.Display.TPS),
		frames:  core.NewFrameTimer(core.DefaultFrameWindow),
		log:     log,
		tint:    render.TintFromRGB(cfg.Display.Tint),
		scale:   cfg.Display.Scale,
	}
	g.refresh()
	return g
}

// Reset reinitializes the world state with the provided seed, which also
// becomes the configured seed. Zero reuses the configured seed.
func (g *Game) Reset(seed int64) {
	g.world.SetSeed(seed)
	g.tickOnce = false
	g.refresh()
	g.log.Info("reset", "seed", g.world.Config().Seed.Value)
}

func (g *Game) refresh() {
	g.painter.Upload(g.world.Cells(), g.tint)
	g.stats = telemetry.Measure(g.world.Engine().Ticks(), g.world.Cells())
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.clock.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
		g.gate.Force()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		// Keep the seed in the HUD control's positive int range.
		g.Reset(1 + time.Now().UnixNano()%math.MaxInt32)
	}
	g.overlay.Update()

	switch {
	case g.tickOnce:
		g.advance()
		g.tickOnce = false
	case !g.paused:
		for n := 0; n < maxStepsPerUpdate && g.clock.ShouldStep(); n++ {
			g.advance()
		}
	}

	size := g.world.Size()
	g.hud.Update(size.W*g.scale, ui.Status{
		Tick:   g.world.Engine().Ticks(),
		FPS:    g.frames.FPS(),
		Paused: g.paused,
		Stats:  g.stats,
	})
	return nil
}

func (g *Game) advance() {
	g.world.Step()
	if g.gate.Step() {
		g.refresh()
	}
}

// Draw renders the last refreshed grid state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.frames.Tick()
	g.painter.Draw(screen, g.scale)
	g.overlay.Draw(screen)
	size := g.world.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
