package app

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger: text by default, JSON for machine
// consumption.
func NewLogger(w io.Writer, json bool) *slog.Logger {
	if json {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
