// Package storage provides JSON-based persistence for run reports.
//
// Each location gets its own report file (report_<slug>.json) under a
// data directory, holding the most recent RunReport so operators can
// inspect the outcome of the previous run. The default location is
// ~/.local/share/eventsync/.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/eventsync/internal/pipeline"
)

// Storage handles persistence of run reports.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating it if needed.
// A leading ~/ expands to the user's home directory.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// reportPath returns the report file path for a location.
func (s *Storage) reportPath(location string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(location)), " ", "-")
	return filepath.Join(s.dataDir, fmt.Sprintf("report_%s.json", slug))
}

// SaveReport writes the report for its location, replacing any previous
// one.
func (s *Storage) SaveReport(report pipeline.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := os.WriteFile(s.reportPath(report.Location), data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// LoadReport reads the last saved report for a location. Returns
// (nil, nil) when no report has been saved yet.
func (s *Storage) LoadReport(location string) (*pipeline.RunReport, error) {
	data, err := os.ReadFile(s.reportPath(location))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var report pipeline.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}

	return &report, nil
}
