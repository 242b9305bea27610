// Command nca-run steps an automaton without a window and records
// telemetry, a plot and the final frame into a fresh run directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jon5th5n/neuralcellularautomata/internal/app"
	"github.com/jon5th5n/neuralcellularautomata/internal/render"
	"github.com/jon5th5n/neuralcellularautomata/internal/report"
	"github.com/jon5th5n/neuralcellularautomata/internal/telemetry"
)

type options struct {
	app.Config
	Steps       int
	SampleEvery int
	OutDir      string
	NoPlot      bool
}

func main() {
	opts := options{Config: *app.NewConfig()}
	opts.Bind(flag.CommandLine)
	flag.IntVar(&opts.Steps, "steps", 0, "ticks to simulate (0 = from config)")
	flag.IntVar(&opts.SampleEvery, "every", 0, "ticks between telemetry samples (0 = from config)")
	flag.StringVar(&opts.OutDir, "out", "", "parent directory for run output (empty = from config)")
	flag.BoolVar(&opts.NoPlot, "no-plot", false, "skip the PNG statistics plot")
	flag.Parse()

	logger := app.NewLogger(os.Stderr, opts.LogJSON)
	slog.SetDefault(logger)

	summary, err := run(opts, logger)
	if err != nil {
		log.Fatalf("nca-run: %v", err)
	}
	for _, line := range summary.Lines(report.NewPrinter()) {
		fmt.Println(line)
	}
}

func run(opts options, logger *slog.Logger) (report.Summary, error) {
	world, err := opts.Load()
	if err != nil {
		return report.Summary{}, err
	}
	cfg := world.Config()
	if opts.Steps > 0 {
		cfg.Run.Steps = opts.Steps
	}
	if opts.SampleEvery > 0 {
		cfg.Run.SampleEvery = opts.SampleEvery
	}
	if opts.OutDir != "" {
		cfg.Run.OutDir = opts.OutDir
	}

	runID := uuid.New().String()
	dir := filepath.Join(cfg.Run.OutDir, world.Name()+"-"+runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return report.Summary{}, fmt.Errorf("creating output directory: %w", err)
	}
	if err := cfg.WriteYAML(filepath.Join(dir, "config.yaml")); err != nil {
		return report.Summary{}, err
	}
	csv, err := telemetry.CreateCSV(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return report.Summary{}, err
	}
	defer csv.Close()

	logger = logger.With("run", runID, "preset", world.Name())
	logger.Info("run started",
		"dir", dir,
		"width", cfg.Grid.Width,
		"height", cfg.Grid.Height,
		"steps", cfg.Run.Steps,
		"wrap", world.Engine().Wrap().String(),
	)

	var rec telemetry.Recorder
	observe := func() error {
		s := rec.Observe(world.Engine().Ticks(), world.Cells())
		logger.Debug("sample", "stats", s)
		return csv.Write(s)
	}
	if err := observe(); err != nil {
		return report.Summary{}, err
	}

	start := time.Now()
	for i := 1; i <= cfg.Run.Steps; i++ {
		world.Step()
		if i%cfg.Run.SampleEvery == 0 || i == cfg.Run.Steps {
			if err := observe(); err != nil {
				return report.Summary{}, err
			}
		}
	}
	elapsed := time.Since(start)

	if err := csv.Close(); err != nil {
		return report.Summary{}, err
	}
	if !opts.NoPlot {
		if err := telemetry.SavePlot(rec.Samples(), world.Name(), filepath.Join(dir, "stats.png")); err != nil {
			return report.Summary{}, err
		}
	}
	size := world.Size()
	tint := render.TintFromRGB(cfg.Display.Tint)
	if err := render.SavePNG(filepath.Join(dir, "final.png"), world.Cells(), size.W, size.H, cfg.Display.Scale, tint); err != nil {
		return report.Summary{}, err
	}

	final, _ := rec.Last()
	logger.Info("run finished", "elapsed", elapsed, "stats", final)
	return report.Summary{
		Name:    world.Name(),
		RunID:   runID,
		Width:   size.W,
		Height:  size.H,
		Steps:   cfg.Run.Steps,
		Elapsed: elapsed,
		Final:   final,
	}, nil
}
