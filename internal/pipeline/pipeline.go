// Package pipeline orchestrates one aggregation run: source adapters →
// normalization → deduplication → external sync, producing a RunReport.
//
// The pipeline never fails past its boundary. Per-adapter and per-event
// failures are absorbed at their stage and show up only in the report's
// counts; sync-stage fatal errors surface in the report's Error field with
// Success set to false. Callers branch on the report, not on errors.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/eventsync/internal/dedup"
	"github.com/pfrederiksen/eventsync/internal/event"
	"github.com/pfrederiksen/eventsync/internal/extract"
	"github.com/pfrederiksen/eventsync/internal/normalizer"
	"github.com/pfrederiksen/eventsync/internal/source"
	"github.com/pfrederiksen/eventsync/internal/syncer"
)

// ReportEvent is one canonical event as it appears in the report.
type ReportEvent struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Venue    string `json:"venue"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

// RunReport summarizes one pipeline execution. It is created once per run
// and never mutated after the run completes.
type RunReport struct {
	RunID              string        `json:"run_id"`
	Success            bool          `json:"success"`
	Location           string        `json:"location"`
	Month              string        `json:"month"`
	Year               int           `json:"year"`
	RawEventsCount     int           `json:"raw_events_count"`
	CleanedEventsCount int           `json:"cleaned_events_count"`
	Events             []ReportEvent `json:"events"`
	SyncStrategy       string        `json:"sync_strategy,omitempty"`
	Error              string        `json:"error,omitempty"`
	CheckedAt          time.Time     `json:"checked_at"`
}

// Pipeline wires the stages together. Collaborators are injected at
// construction so tests can substitute fakes.
type Pipeline struct {
	logger   *slog.Logger
	runner   *source.Runner
	adapters []source.Adapter
	sync     *syncer.Manager
}

// New creates a Pipeline over the given adapters.
func New(logger *slog.Logger, runner *source.Runner, adapters []source.Adapter, sync *syncer.Manager) *Pipeline {
	return &Pipeline{
		logger:   logger,
		runner:   runner,
		adapters: adapters,
		sync:     sync,
	}
}

// Run executes the full pipeline for a location and month/year window.
func (p *Pipeline) Run(ctx context.Context, location, monthName string, year int) (report RunReport) {
	report = RunReport{
		RunID:     uuid.NewString(),
		Location:  location,
		Month:     monthName,
		Year:      year,
		Events:    []ReportEvent{},
		CheckedAt: time.Now().UTC(),
	}

	// The pipeline contract is that nothing escapes Run; a bug in a
	// stage becomes a failed report, not a crash.
	defer func() {
		if r := recover(); r != nil {
			report.Success = false
			report.Error = fmt.Sprintf("internal failure: %v", r)
		}
	}()

	log := p.logger.With(
		slog.String("run_id", report.RunID),
		slog.String("location", location),
	)

	if location == "" {
		report.Error = "location is required"
		return report
	}
	window, err := event.ParseWindow(monthName, year)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	log.Info("starting aggregation run", slog.String("window", window.String()))

	raw := p.runner.Run(ctx, p.adapters, extract.Query{Location: location, Window: window})
	report.RawEventsCount = len(raw)
	log.Info("raw candidate pool assembled", slog.Int("count", len(raw)))

	norm := normalizer.New(window)
	cleaned := make([]event.Event, 0, len(raw))
	rejected := make(map[normalizer.Reason]int)
	for _, e := range raw {
		ne, err := norm.Normalize(e)
		if err != nil {
			var v *normalizer.ValidationError
			if errors.As(err, &v) {
				rejected[v.Reason]++
			}
			continue
		}
		cleaned = append(cleaned, ne)
	}
	for reason, count := range rejected {
		log.Debug("rejected candidates", slog.String("reason", string(reason)), slog.Int("count", count))
	}

	canonical := dedup.Deduplicate(cleaned)
	report.CleanedEventsCount = len(canonical)
	log.Info("canonical set built",
		slog.Int("cleaned", len(cleaned)),
		slog.Int("canonical", len(canonical)),
	)

	for _, e := range canonical {
		report.Events = append(report.Events, ReportEvent{
			Name:     e.Name,
			Date:     e.DateText(),
			Venue:    e.Venue,
			Category: e.Category,
			Source:   e.Source,
		})
	}

	outcome := p.sync.Sync(ctx, location, canonical)
	report.SyncStrategy = outcome.Strategy
	report.Success = outcome.Success
	if outcome.Err != nil {
		report.Error = outcome.Err.Error()
	}

	log.Info("run finished",
		slog.Bool("success", report.Success),
		slog.String("strategy", report.SyncStrategy),
	)

	return report
}
