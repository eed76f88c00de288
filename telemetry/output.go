package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir         string
	resultsFile *os.File

	headerWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "results.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating results.csv: %w", err)
	}
	return &OutputManager{dir: dir, resultsFile: f}, nil
}

// WriteRows appends batch rows to results.csv, emitting the header on the
// first call only.
func (om *OutputManager) WriteRows(rows []BatchRow) error {
	if om == nil || len(rows) == 0 {
		return nil
	}
	if !om.headerWritten {
		om.headerWritten = true
		if err := gocsv.MarshalFile(&rows, om.resultsFile); err != nil {
			return fmt.Errorf("writing results.csv: %w", err)
		}
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(&rows, om.resultsFile); err != nil {
		return fmt.Errorf("appending results.csv: %w", err)
	}
	return nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.resultsFile.Close()
}
