// Package report formats human-readable run summaries in the user's locale.
package report

import (
	"log/slog"
	"time"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"

	"github.com/jon5th5n/neuralcellularautomata/internal/telemetry"
)

// NewPrinter returns a printer for the system locales, falling back to
// en-US when none can be detected.
func NewPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		slog.Debug("locale detection failed", "error", err)
	}
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}
	return message.NewPrinter(message.MatchLanguage(locales...))
}

// Summary describes a finished headless run.
type Summary struct {
	Name    string
	RunID   string
	Width   int
	Height  int
	Steps   int
	Elapsed time.Duration
	Final   telemetry.Sample
}

// CellUpdatesPerSecond is the throughput of the run.
func (s Summary) CellUpdatesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Width) * float64(s.Height) * float64(s.Steps) / s.Elapsed.Seconds()
}

// Lines renders the summary with p.
func (s Summary) Lines(p *message.Printer) []string {
	return []string{
		p.Sprintf("run %s (%s)", s.RunID, s.Name),
		p.Sprintf("%d×%d grid, %d steps in %v", s.Width, s.Height, s.Steps, s.Elapsed.Round(time.Millisecond)),
		p.Sprintf("%.0f cell updates/s", s.CellUpdatesPerSecond()),
		p.Sprintf("final mean %.4f, stddev %.4f, active %.1f%%", s.Final.Mean, s.Final.StdDev, 100*s.Final.Active),
	}
}
