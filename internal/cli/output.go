package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/eventsync/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteReport writes the run report in the specified format
func WriteReport(w io.Writer, report pipeline.RunReport, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the report as JSON
func writeJSON(w io.Writer, report pipeline.RunReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// writeText outputs the report as human-readable text
func writeText(w io.Writer, report pipeline.RunReport) error {
	fmt.Fprintf(w, "Events for %s - %s %d\n", report.Location, report.Month, report.Year)
	fmt.Fprintf(w, "Raw candidates: %d, canonical events: %d\n",
		report.RawEventsCount, report.CleanedEventsCount)

	if report.Success {
		fmt.Fprintf(w, "Sync: ok (%s)\n", report.SyncStrategy)
	} else {
		fmt.Fprintf(w, "Sync: FAILED - %s\n", report.Error)
	}

	if len(report.Events) == 0 {
		fmt.Fprintln(w, "\nNo events found.")
		return nil
	}

	fmt.Fprintln(w)
	for _, e := range report.Events {
		line := fmt.Sprintf("%s  %s", e.Date, e.Name)
		if e.Venue != "" {
			line += fmt.Sprintf(" @ %s", e.Venue)
		}
		line += fmt.Sprintf(" [%s, via %s]", e.Category, e.Source)
		fmt.Fprintln(w, line)
	}

	return nil
}
