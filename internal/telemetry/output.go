package telemetry

import (
	"errors"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// CSVWriter appends samples to a CSV file, writing the header once.
type CSVWriter struct {
	f             *os.File
	headerWritten bool
}

// CreateCSV creates (or truncates) the file at path.
func CreateCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVWriter{f: f}, nil
}

// Write appends one record.
func (w *CSVWriter) Write(s Sample) error {
	if w.f == nil {
		return errors.New("telemetry: write to closed CSV")
	}
	records := []Sample{s}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.f); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.f); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close closes the file. Calls after the first do nothing.
func (w *CSVWriter) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// ReadCSV loads samples written by CSVWriter.
func ReadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []Sample
	if err := gocsv.UnmarshalFile(f, &out); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return out, nil
}
