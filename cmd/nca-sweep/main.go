// Command nca-sweep runs every preset with a range of center weights in
// parallel and ranks the results by how much structure survives.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/jon5th5n/neuralcellularautomata/internal/app"
	"github.com/jon5th5n/neuralcellularautomata/internal/config"
	"github.com/jon5th5n/neuralcellularautomata/internal/sims/nca"
	"github.com/jon5th5n/neuralcellularautomata/internal/telemetry"
)

type scenario struct {
	Preset string
	Center float32
}

func (s scenario) String() string {
	return fmt.Sprintf("%s center=%.3f", s.Preset, s.Center)
}

type scenarioResult struct {
	Preset string  `csv:"preset"`
	Center float32 `csv:"center"`
	StdDev float64 `csv:"stddev"`
	Mean   float64 `csv:"mean"`
	Active float64 `csv:"active_frac"`
	Err    string  `csv:"error"`
}

func (r scenarioResult) job() scenario {
	return scenario{Preset: r.Preset, Center: r.Center}
}

func main() {
	steps := flag.Int("steps", 300, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("width", 128, "grid width for sweep runs")
	height := flag.Int("height", 128, "grid height for sweep runs")
	seed := flag.Int64("seed", 1337, "seed used for every scenario")
	presets := flag.String("presets", strings.Join(nca.PresetNames(), ","), "comma-separated presets to sweep")
	deltas := flag.String("deltas", "-0.2,-0.1,0,0.1,0.2", "comma-separated offsets added to each preset's center weight")
	top := flag.Int("top", 5, "results to print")
	csvPath := flag.String("csv", "", "write all results to this CSV file")
	logJSON := flag.Bool("log-json", false, "log as JSON instead of text")
	flag.Parse()

	logger := app.NewLogger(os.Stderr, *logJSON)

	base := config.Default()
	base.Grid.Width = *width
	base.Grid.Height = *height
	base.Seed.Value = *seed

	offsets, err := parseOffsets(*deltas)
	if err != nil {
		log.Fatalf("nca-sweep: -deltas: %v", err)
	}
	sets, err := buildScenarios(base, strings.Split(*presets, ","), offsets)
	if err != nil {
		log.Fatalf("nca-sweep: %v", err)
	}

	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps)\n", len(sets), *workers, *steps)
	start := time.Now()
	all := sweep(base, sets, *steps, *workers)
	elapsed := time.Since(start)

	for _, res := range all {
		if res.Err != "" {
			logger.Warn("scenario failed", "scenario", res.job().String(), "error", res.Err)
		}
	}

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) stddev=%.4f mean=%.4f active=%.1f%% %s\n", i+1, res.StdDev, res.Mean, 100*res.Active, res.job())
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatalf("nca-sweep: %v", err)
		}
		defer f.Close()
		if err := gocsv.Marshal(all, f); err != nil {
			log.Fatalf("nca-sweep: writing results: %v", err)
		}
		logger.Info("results written", "path", *csvPath, "rows", len(all))
	}
}

func parseOffsets(s string) ([]float32, error) {
	var out []float32
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(v))
	}
	return out, nil
}

// buildScenarios pairs every preset with its center weight shifted by each
// offset. Centers are clamped to the kernel's [-1, 1] range and duplicates
// dropped.
func buildScenarios(base *config.Config, presets []string, offsets []float32) ([]scenario, error) {
	var sets []scenario
	for _, name := range presets {
		name = strings.TrimSpace(name)
		cfg := base.Clone()
		if err := nca.ApplyPreset(name, cfg); err != nil {
			return nil, err
		}
		center := cfg.Kernel.Weights[len(cfg.Kernel.Weights)/2]
		seen := map[float32]bool{}
		for _, d := range offsets {
			c := min(max(center+d, -1), 1)
			if seen[c] {
				continue
			}
			seen[c] = true
			sets = append(sets, scenario{Preset: name, Center: c})
		}
	}
	return sets, nil
}

// sweep evaluates every scenario on a pool of workers and returns the
// results sorted by final standard deviation, highest first.
func sweep(base *config.Config, sets []scenario, steps, workers int) []scenarioResult {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(base, sc, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	all := make([]scenarioResult, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].StdDev != all[j].StdDev {
			return all[i].StdDev > all[j].StdDev
		}
		if all[i].Preset != all[j].Preset {
			return all[i].Preset < all[j].Preset
		}
		return all[i].Center < all[j].Center
	})
	return all
}

func runScenario(base *config.Config, sc scenario, steps int) scenarioResult {
	res := scenarioResult{Preset: sc.Preset, Center: sc.Center}
	world, err := nca.NewPreset(sc.Preset, base, nil)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	center := len(world.Config().Kernel.Weights) / 2
	if !world.SetFloatParameter("w"+strconv.Itoa(center), float64(sc.Center)) {
		res.Err = "center weight rejected"
		return res
	}
	for i := 0; i < steps; i++ {
		world.Step()
	}
	s := telemetry.Measure(world.Engine().Ticks(), world.Cells())
	res.StdDev = s.StdDev
	res.Mean = s.Mean
	res.Active = s.Active
	return res
}
