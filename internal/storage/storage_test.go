package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/eventsync/internal/pipeline"
)

func TestSaveAndLoadReport(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report := pipeline.RunReport{
		RunID:              "run-123",
		Success:            true,
		Location:           "New York",
		Month:              "January",
		Year:               2024,
		RawEventsCount:     5,
		CleanedEventsCount: 3,
		Events: []pipeline.ReportEvent{
			{Name: "Jazz Night", Date: "2024-01-15", Category: "music", Source: "Eventbrite"},
		},
		SyncStrategy: "detail-records",
		CheckedAt:    time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC),
	}

	if err := s.SaveReport(report); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	loaded, err := s.LoadReport("New York")
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a saved report")
	}
	if loaded.RunID != report.RunID {
		t.Errorf("run id = %q, want %q", loaded.RunID, report.RunID)
	}
	if loaded.CleanedEventsCount != 3 {
		t.Errorf("cleaned count = %d, want 3", loaded.CleanedEventsCount)
	}
	if len(loaded.Events) != 1 || loaded.Events[0].Name != "Jazz Night" {
		t.Errorf("events = %+v", loaded.Events)
	}
	if !loaded.CheckedAt.Equal(report.CheckedAt) {
		t.Errorf("checked at = %v, want %v", loaded.CheckedAt, report.CheckedAt)
	}
}

func TestSaveReportReplacesPrevious(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first := pipeline.RunReport{RunID: "run-1", Location: "Austin"}
	second := pipeline.RunReport{RunID: "run-2", Location: "Austin"}

	if err := s.SaveReport(first); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if err := s.SaveReport(second); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	loaded, err := s.LoadReport("Austin")
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if loaded.RunID != "run-2" {
		t.Errorf("run id = %q, want the latest report", loaded.RunID)
	}
}

func TestLoadReportMissing(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	loaded, err := s.LoadReport("Nowhere")
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected no report, got %+v", loaded)
	}
}

func TestReportFileNameUsesSlug(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := s.SaveReport(pipeline.RunReport{Location: "New York"}); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "report_new-york.json")); err != nil {
		t.Errorf("expected slugged report file: %v", err)
	}
}

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	if _, err := New(dir); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("data directory should exist: %v", err)
	}
}
