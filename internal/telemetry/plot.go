package telemetry

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePlot draws mean, standard deviation and active fraction against the
// tick and writes the chart to path. The format follows the extension.
func SavePlot(samples []Sample, title, path string) error {
	if len(samples) == 0 {
		return errors.New("telemetry: no samples to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "tick"
	p.Y.Label.Text = "value"
	p.Y.Min, p.Y.Max = 0, 1

	series := []struct {
		name  string
		color color.RGBA
		value func(Sample) float64
	}{
		{"mean", color.RGBA{R: 104, G: 212, B: 134, A: 255}, func(s Sample) float64 { return s.Mean }},
		{"stddev", color.RGBA{R: 60, G: 90, B: 200, A: 255}, func(s Sample) float64 { return s.StdDev }},
		{"active", color.RGBA{R: 200, G: 70, B: 60, A: 255}, func(s Sample) float64 { return s.Active }},
	}
	for _, sr := range series {
		pts := make(plotter.XYs, len(samples))
		for i, s := range samples {
			pts[i] = plotter.XY{X: float64(s.Tick), Y: sr.value(s)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("creating %s line: %w", sr.name, err)
		}
		line.Width = vg.Points(1)
		line.Color = sr.color
		p.Add(line)
		p.Legend.Add(sr.name, line)
	}
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
