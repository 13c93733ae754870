// Package syncer upserts canonical events into the external record system
// for a location, falling back to a summary-field write when the external
// schema lacks detail records.
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pfrederiksen/eventsync/internal/crm"
	"github.com/pfrederiksen/eventsync/internal/dedup"
	"github.com/pfrederiksen/eventsync/internal/event"
)

// Persistence strategies.
const (
	StrategyDetailRecords = "detail-records"
	StrategySummaryField  = "summary-field"
)

// SummaryLimit caps how many events the summary-field digest carries.
const SummaryLimit = 10

// DefaultMaxRetries bounds retries of transient external failures.
const DefaultMaxRetries = 3

// Outcome reports how a sync ended.
type Outcome struct {
	Success  bool
	Strategy string
	Err      error
}

// Manager synchronizes canonical event sets into the external system.
type Manager struct {
	logger     *slog.Logger
	client     crm.Client
	maxRetries uint64
}

// New creates a Manager. maxRetries bounds retry attempts for transient
// failures; zero means no retries.
func New(logger *slog.Logger, client crm.Client, maxRetries uint64) *Manager {
	return &Manager{
		logger:     logger,
		client:     client,
		maxRetries: maxRetries,
	}
}

// Sync resolves the location and writes the events. Detail records keyed
// by fingerprint are attempted first; a *crm.SchemaError, and only that,
// triggers the summary-field fallback. Transient failures are retried with
// exponential backoff; ErrLocationNotFound and permanent errors are not.
func (m *Manager) Sync(ctx context.Context, location string, events []event.Event) Outcome {
	log := m.logger.With(slog.String("location", location))

	var loc *crm.Location
	err := m.retryTransient(ctx, func() error {
		var findErr error
		loc, findErr = m.client.FindLocation(ctx, location)
		return findErr
	})
	if err != nil {
		return Outcome{Err: fmt.Errorf("resolving location: %w", err)}
	}
	if loc == nil {
		log.Warn("location not found in external system")
		return Outcome{Err: crm.ErrLocationNotFound}
	}

	records := toDetailRecords(events)
	err = m.retryTransient(ctx, func() error {
		return m.client.UpsertDetailRecords(ctx, loc.ID, records)
	})
	if err == nil {
		log.Info("synced detail records", slog.Int("count", len(records)))
		return Outcome{Success: true, Strategy: StrategyDetailRecords}
	}

	var schemaErr *crm.SchemaError
	if !errors.As(err, &schemaErr) {
		return Outcome{Strategy: StrategyDetailRecords, Err: err}
	}

	log.Info("detail object unavailable, falling back to summary field",
		slog.String("object", schemaErr.Object))

	summary, err := BuildSummary(events)
	if err != nil {
		return Outcome{Strategy: StrategySummaryField, Err: fmt.Errorf("building summary: %w", err)}
	}

	err = m.retryTransient(ctx, func() error {
		return m.client.UpdateSummaryField(ctx, loc.ID, summary, time.Now().UTC())
	})
	if err != nil {
		return Outcome{Strategy: StrategySummaryField, Err: err}
	}

	log.Info("synced summary field")
	return Outcome{Success: true, Strategy: StrategySummaryField}
}

// retryTransient runs op, retrying only *crm.TransientError results.
func (m *Manager) retryTransient(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), m.maxRetries), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		var transient *crm.TransientError
		if errors.As(err, &transient) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}

// toDetailRecords converts canonical events into upsertable records.
func toDetailRecords(events []event.Event) []crm.DetailRecord {
	records := make([]crm.DetailRecord, 0, len(events))
	for _, e := range events {
		records = append(records, crm.DetailRecord{
			Fingerprint: event.Fingerprint(e),
			Name:        e.Name,
			Date:        e.DateText(),
			Description: e.Description,
			Venue:       e.Venue,
			Category:    e.Category,
			URL:         e.URL,
			Source:      e.Source,
		})
	}
	return records
}

// summaryEvent is the digest entry stored in the summary field.
type summaryEvent struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Venue    string `json:"venue"`
	Category string `json:"category"`
}

// BuildSummary produces the JSON digest for the summary-field strategy.
// Truncation to SummaryLimit is deterministic: events are ordered by
// source priority, then date ascending, then name, and the first
// SummaryLimit entries survive.
func BuildSummary(events []event.Event) (string, error) {
	ordered := make([]event.Event, len(events))
	copy(ordered, events)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := dedup.Priority(ordered[i].Source), dedup.Priority(ordered[j].Source)
		if pi != pj {
			return pi < pj
		}
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].Name < ordered[j].Name
	})

	if len(ordered) > SummaryLimit {
		ordered = ordered[:SummaryLimit]
	}

	digest := make([]summaryEvent, 0, len(ordered))
	for _, e := range ordered {
		digest = append(digest, summaryEvent{
			Name:     e.Name,
			Date:     e.DateText(),
			Venue:    e.Venue,
			Category: e.Category,
		})
	}

	data, err := json.Marshal(digest)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
